package cmd

import (
	"fmt"
	"strings"

	"clipkeep/internal/command"
	"clipkeep/internal/platform"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(execCmd)
}

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run one clipkeep command against the stored history",
	Long: `Runs a single command line and prints its result. Commands that carry
their own flags need a "--" separator so they are not read as clipkeep flags.
The paste keystroke is only sent by 'clipkeep run'; here paste leaves the
entry on the clipboard.`,
	Example: `  clipkeep exec copy 0
  clipkeep exec search 're:^https?://'
  clipkeep exec snippet save sig from 2
  clipkeep exec -- clear --force`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		session := openSession(st, clipboardPort(), nil)
		d := command.New(session, platform.ExecOpener{}, logger)
		fmt.Println(d.Execute(strings.Join(args, " ")))
		return nil
	},
}
