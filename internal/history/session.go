// Package history owns the clipboard history and every collection that hangs
// off it: entry stats, snippets, templates, auto-rules, reminders and the
// action log. A Session is the single writer; the watcher and the command
// dispatcher both go through it.
package history

import (
	"reflect"
	"sync"
	"time"

	"clipkeep/internal/platform"
	"clipkeep/internal/rules"
	"clipkeep/internal/store"

	"go.uber.org/zap"
)

const (
	DefaultMaxEntries = 50
	DefaultPasteDelay = 100 * time.Millisecond
	undoDepth         = 100
)

// Persister stores whole collections by name.
type Persister interface {
	SaveDocument(name string, v any) error
	LoadDocument(name string, v any) (bool, error)
}

type Options struct {
	MaxEntries int
	PasteDelay time.Duration
	Store      Persister
	Clipboard  platform.Port
	Paster     platform.Paster
	Logger     *zap.Logger
	Now        func() time.Time
}

type deletedEntry struct {
	entry Entry
	index int
}

type Session struct {
	mu         sync.Mutex
	max        int
	pasteDelay time.Duration
	now        func() time.Time
	logger     *zap.Logger
	store      Persister
	port       platform.Port
	paster     platform.Paster

	entries   []Entry
	stats     map[string]*EntryStats
	snippets  map[string]string
	templates map[string]string
	rules     *rules.Engine
	reminders []Reminder
	scheduled []ScheduledPaste

	actions actionLog
	deleted []deletedEntry
	events  broadcaster
}

// New builds a session and loads every persisted collection. Load failures
// are logged and leave the collection empty.
func New(opts Options) *Session {
	s := &Session{
		max:        opts.MaxEntries,
		pasteDelay: opts.PasteDelay,
		now:        opts.Now,
		logger:     opts.Logger,
		store:      opts.Store,
		port:       opts.Clipboard,
		paster:     opts.Paster,
		stats:      make(map[string]*EntryStats),
		snippets:   make(map[string]string),
		templates:  make(map[string]string),
	}
	if s.max <= 0 {
		s.max = DefaultMaxEntries
	}
	if s.pasteDelay <= 0 {
		s.pasteDelay = DefaultPasteDelay
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.port == nil {
		s.port = platform.NewMemoryPort()
	}

	s.load()
	return s
}

func (s *Session) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadDoc(store.DocHistory, &s.entries)
	s.loadDoc(store.DocEntryStats, &s.stats)
	s.loadDoc(store.DocSnippets, &s.snippets)
	s.loadDoc(store.DocTemplates, &s.templates)
	s.loadDoc(store.DocReminders, &s.reminders)
	s.loadDoc(store.DocScheduled, &s.scheduled)

	var rs []rules.Rule
	s.loadDoc(store.DocAutoRules, &rs)
	s.rules = rules.NewEngine(rs)

	// a nil map in the stored document decodes over ours
	if s.stats == nil {
		s.stats = make(map[string]*EntryStats)
	}
	if s.snippets == nil {
		s.snippets = make(map[string]string)
	}
	if s.templates == nil {
		s.templates = make(map[string]string)
	}

	if s.evict() > 0 {
		s.saveEntries()
	}
	s.logger.Debug("session loaded",
		zap.Int("entries", len(s.entries)),
		zap.Int("snippets", len(s.snippets)),
		zap.Int("rules", len(rs)))
}

func (s *Session) loadDoc(name string, v any) {
	if s.store == nil {
		return
	}
	if _, err := s.store.LoadDocument(name, v); err != nil {
		// a failed decode can leave v half filled
		reflect.ValueOf(v).Elem().SetZero()
		s.logger.Warn("load collection failed, starting empty", zap.String("collection", name), zap.Error(err))
	}
}

// save writes a collection through. Errors are logged and otherwise ignored;
// memory stays authoritative.
func (s *Session) save(name string, v any) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveDocument(name, v); err != nil {
		s.logger.Warn("save collection failed", zap.String("collection", name), zap.Error(err))
	}
}

func (s *Session) saveEntries()   { s.save(store.DocHistory, s.entries) }
func (s *Session) saveStats()     { s.save(store.DocEntryStats, s.stats) }
func (s *Session) saveSnippets()  { s.save(store.DocSnippets, s.snippets) }
func (s *Session) saveTemplates() { s.save(store.DocTemplates, s.templates) }
func (s *Session) saveRules()     { s.save(store.DocAutoRules, s.rules.Rules()) }
func (s *Session) saveReminders() { s.save(store.DocReminders, s.reminders) }
func (s *Session) saveScheduled() { s.save(store.DocScheduled, s.scheduled) }

func (s *Session) logAction(action, entryID, result string) {
	s.actions.add(Action{Action: action, EntryID: entryID, Result: result, Timestamp: s.now()})
}

// Log returns up to n recent actions, newest first.
func (s *Session) Log(n int) []Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions.recent(n)
}

// MaxEntries reports the history cap.
func (s *Session) MaxEntries() int {
	return s.max
}

// at returns the live entry at index i. Callers hold s.mu.
func (s *Session) at(i int) (*Entry, error) {
	if i < 0 || i >= len(s.entries) {
		return nil, ErrInvalidIndex
	}
	return &s.entries[i], nil
}

// statsFor returns the stats record for id, creating it on first use.
func (s *Session) statsFor(id string) *EntryStats {
	st, ok := s.stats[id]
	if !ok {
		st = &EntryStats{}
		s.stats[id] = st
	}
	return st
}

func (s *Session) touch(id string) {
	st := s.statsFor(id)
	st.UseCount++
	st.LastUsed = s.now()
	s.saveStats()
}
