package cmd

import (
	"fmt"
	"strings"

	"clipkeep/internal/history"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	listKind     string
	listPinned   bool
	listFavorite bool
	listLimit    int
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listKind, "kind", "", "only entries of this kind (text, image, html, snippet)")
	listCmd.Flags().BoolVar(&listPinned, "pinned", false, "filter on the pinned flag")
	listCmd.Flags().BoolVar(&listFavorite, "favorite", false, "filter on the favorite flag")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 50, "max entries to print")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored clipboard entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f history.Filter
		if listKind != "" {
			k, ok := history.ParseKind(listKind)
			if !ok {
				return fmt.Errorf("unknown kind %q", listKind)
			}
			f.Kind = &k
		}
		if cmd.Flags().Changed("pinned") {
			f.Pinned = &listPinned
		}
		if cmd.Flags().Changed("favorite") {
			f.Favorite = &listFavorite
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		found := openSession(st, nil, nil).Find(f)
		if len(found) == 0 {
			fmt.Println("No entries yet — run 'clipkeep run' and copy something")
			return nil
		}

		fmt.Printf("%-4s %-7s %-5s %-16s %-9s %s\n", "#", "KIND", "FLAGS", "CREATED", "SIZE", "PREVIEW")
		fmt.Println("─────────────────────────────────────────────────────────────────")
		for n, p := range found {
			if n >= listLimit {
				fmt.Printf("… %d more\n", len(found)-n)
				break
			}
			e := p.Entry
			fmt.Printf("%-4d %-7s %-5s %-16s %-9s %s\n",
				p.Index,
				e.Kind,
				flags(e),
				e.CreatedAt.Local().Format("2006-01-02 15:04"),
				humanize.Bytes(uint64(e.SizeBytes)),
				strings.Join(strings.Fields(e.Preview), " "),
			)
			if len(e.Tags) > 0 {
				fmt.Printf("     tags: %s\n", strings.Join(e.Tags, ", "))
			}
		}
		return nil
	},
}

func flags(e history.Entry) string {
	var b strings.Builder
	for _, f := range []struct {
		on bool
		c  byte
	}{{e.Pinned, 'P'}, {e.Favorite, 'F'}, {e.Locked, 'L'}} {
		if f.on {
			b.WriteByte(f.c)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
