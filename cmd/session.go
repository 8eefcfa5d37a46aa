package cmd

import (
	"fmt"
	"os"

	"clipkeep/internal/history"
	"clipkeep/internal/platform"
	"clipkeep/internal/store"
)

// openStore opens the database in the data directory. The directory must
// have been set up with 'clipkeep init'.
func openStore() (*store.Store, error) {
	if _, err := os.Stat(store.Path(dataDir)); os.IsNotExist(err) {
		return nil, fmt.Errorf("not initialized — run 'clipkeep init' first")
	}
	return store.New(dataDir)
}

// clipboardPort picks the system clipboard when one is reachable and falls
// back to an in-process clipboard otherwise.
func clipboardPort() platform.Port {
	sys := platform.NewSystemPort()
	if sys.Available() {
		return sys
	}
	logger.Warn("system clipboard unavailable, using in-memory clipboard")
	return platform.NewMemoryPort()
}

// openSession loads the history from st and wires it to the platform.
// Templates from the config file are merged into the stored set. A nil
// paster leaves pasted entries on the clipboard without a keystroke.
func openSession(st *store.Store, port platform.Port, paster platform.Paster) *history.Session {
	s := history.New(history.Options{
		MaxEntries: cfg.MaxEntries,
		PasteDelay: cfg.GetPasteDelay(),
		Store:      st,
		Clipboard:  port,
		Paster:     paster,
		Logger:     logger,
	})
	s.SetTemplates(cfg.Templates)
	return s
}
