package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const Prompt = "clipkeep> "

// Serve reads command lines from in and writes each result to out until
// in is exhausted, the user types quit or exit, or ctx is done.
func (d *Dispatcher) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	fmt.Fprint(out, Prompt)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read commands: %w", err)
					}
				default:
				}
				return nil
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "quit", "exit":
				return nil
			}
			if res := d.Execute(line); res != "" {
				fmt.Fprintln(out, res)
			}
			fmt.Fprint(out, Prompt)
		}
	}
}
