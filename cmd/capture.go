package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"clipkeep/internal/history"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// maxFileCapture bounds how much of a file 'capture file' records.
const maxFileCapture = 1 << 20

var fileKind string

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.AddCommand(captureNoteCmd)
	captureCmd.AddCommand(captureFileCmd)

	captureFileCmd.Flags().StringVar(&fileKind, "kind", "", "record as this kind (text, html); guessed from the extension when empty")
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Record an entry without going through the clipboard",
}

var captureNoteCmd = &cobra.Command{
	Use:   "note [text...]",
	Short: "Record text from the arguments, or from stdin when none are given",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxFileCapture))
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = strings.TrimRight(string(data), "\n")
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("note cannot be empty")
		}
		return record(text, history.KindText, "note")
	},
}

var captureFileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Record the contents of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxFileCapture))
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}

		kind := history.KindText
		switch {
		case fileKind != "":
			k, ok := history.ParseKind(fileKind)
			if !ok || k == history.KindImage {
				return fmt.Errorf("unsupported kind %q", fileKind)
			}
			kind = k
		case strings.EqualFold(filepath.Ext(path), ".html"), strings.EqualFold(filepath.Ext(path), ".htm"):
			kind = history.KindHTML
		}
		return record(string(data), kind, fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(len(data)))))
	},
}

func record(text string, kind history.Kind, label string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	s := openSession(st, nil, nil)
	if _, ok := s.Capture(text, kind); !ok {
		fmt.Println("Skipped: same as the newest entry")
		return nil
	}
	fmt.Printf("Captured %s → entry 0 of %d\n", label, s.Len())
	return nil
}
