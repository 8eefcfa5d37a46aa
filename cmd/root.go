package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"clipkeep/internal/config"
	"clipkeep/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir string
	verbose bool

	cfg    *config.Config
	logger = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "directory holding the history database, config and log")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

var rootCmd = &cobra.Command{
	Use:   "clipkeep",
	Short: "Clipboard history with a command language",
	Long: `clipkeep watches the system clipboard, keeps a bounded history of what
you copied, and lets you paste, transform, tag and search it with short
text commands like "paste 2", "trim 0" or "search re:^http".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(config.Path(dataDir))
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging, dataDir, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("CLIPKEEP_HOME"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "clipkeep")
	}
	return ".clipkeep"
}
