package cmd

import (
	"fmt"
	"os"

	"clipkeep/internal/config"
	"clipkeep/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initReset bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initReset, "reset", false, "drop every stored collection")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory, database and default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbFile := store.Path(dataDir)
		_, statErr := os.Stat(dbFile)
		existed := statErr == nil

		st, err := store.New(dataDir)
		if err != nil {
			return fmt.Errorf("init failed: %w", err)
		}
		defer st.Close()

		if initReset {
			docs, err := st.ListDocuments()
			if err != nil {
				return err
			}
			for _, d := range docs {
				if err := st.DeleteDocument(d.Name); err != nil {
					return fmt.Errorf("reset %s: %w", d.Name, err)
				}
			}
			logger.Info("collections reset", zap.Int("count", len(docs)))
			fmt.Printf("Removed %d stored collections\n", len(docs))
		}

		cfgPath := config.Path(dataDir)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			if err := config.Default().Save(cfgPath); err != nil {
				return err
			}
			fmt.Printf("Wrote default config to %s\n", cfgPath)
		}

		if existed && !initReset {
			fmt.Printf("Already initialized — %s exists\n", dbFile)
			return nil
		}
		fmt.Printf("Initialized clipkeep in %s\n", dataDir)
		return nil
	},
}
