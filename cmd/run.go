package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"clipkeep/internal/capture"
	"clipkeep/internal/command"
	"clipkeep/internal/config"
	"clipkeep/internal/history"
	"clipkeep/internal/platform"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var runNoPrompt bool

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runNoPrompt, "no-prompt", false, "only record the clipboard; do not read commands from stdin")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the clipboard and accept commands on stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		port := clipboardPort()
		session := openSession(st, port, platform.NewExecPaster(logger))
		dispatcher := command.New(session, platform.ExecOpener{}, logger)
		watcher := capture.NewWatcher(port, session, cfg.GetPollInterval(), logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			return watcher.Run(ctx)
		})
		g.Go(func() error {
			return config.Watch(ctx, config.Path(dataDir), func(c *config.Config) {
				session.SetTemplates(c.Templates)
			}, logger)
		})
		g.Go(func() error {
			logEvents(ctx, session)
			return nil
		})

		fmt.Printf("Watching the clipboard (%d entries, cap %d). Type 'help' for commands.\n",
			session.Len(), session.MaxEntries())
		if !runNoPrompt {
			g.Go(func() error {
				defer stop()
				return dispatcher.Serve(ctx, os.Stdin, os.Stdout)
			})
		}

		return g.Wait()
	},
}

func logEvents(ctx context.Context, s *history.Session) {
	events, cancel := s.Subscribe(64)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			logger.Debug("history changed", zap.String("event", string(ev.Type)), zap.String("id", ev.EntryID))
		}
	}
}
