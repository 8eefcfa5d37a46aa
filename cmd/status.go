package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"clipkeep/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status [collection]",
	Short: "Show stored collections, or dump one of them as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if len(args) == 1 {
			doc, err := st.GetDocument(args[0])
			if err != nil {
				return fmt.Errorf("collection %q not found", args[0])
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, []byte(doc.Body), "", "  "); err != nil {
				return fmt.Errorf("decode %s: %w", doc.Name, err)
			}
			fmt.Println(pretty.String())
			return nil
		}

		docs, err := st.ListDocuments()
		if err != nil {
			return err
		}
		fmt.Printf("Data directory: %s\n", dataDir)
		fmt.Printf("Database:       %s\n", store.Path(dataDir))
		fmt.Printf("History cap:    %d entries, polling every %s\n\n", cfg.MaxEntries, cfg.GetPollInterval())

		if len(docs) == 0 {
			fmt.Println("No collections stored yet")
			return nil
		}
		fmt.Printf("%-18s %-10s %s\n", "COLLECTION", "SIZE", "UPDATED")
		for _, d := range docs {
			fmt.Printf("%-18s %-10s %s\n", d.Name, humanize.Bytes(uint64(d.Size)), humanize.Time(d.UpdatedAt))
		}
		return nil
	},
}
