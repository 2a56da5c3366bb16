package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/sandevgo/debugtool/internal/config"
	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/transcript"
	"github.com/sandevgo/debugtool/internal/transport/cli"
	"github.com/sandevgo/debugtool/pkg/log"
	"github.com/sandevgo/debugtool/pkg/srv"
	"github.com/spf13/cobra"
)

var (
	runHTML  string
	runPlain bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>...",
	Short: "Run command files and exit",
	Long:  `Queues each command file in order, prints every event and exits once the queue is drained.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		if err := initEnv(ctx, runtimePath); err != nil {
			return fmt.Errorf("failed to init env: %w", err)
		}

		collected := &eventCollector{}
		sinks := []core.ResultSink{cli.NewPrinter(cmd.OutOrStdout(), runPlain)}
		if runHTML != "" {
			sinks = append(sinks, collected)
		}

		app, services, err := NewApp(ctx, sinks...)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(ctx)
		srv.StartServices(ctx, services, cancel)

		for _, path := range args {
			app.Dispatcher.SubmitFile(path)
		}
		waitErr := app.Dispatcher.Wait(ctx)

		cancel()
		srv.ShutdownServices(ctx, services)

		if waitErr != nil {
			return fmt.Errorf("interrupted: %w", waitErr)
		}

		if runHTML != "" {
			doc := transcript.RenderHTML(core.ToolName, collected.snapshot())
			if err := os.WriteFile(runHTML, []byte(doc), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", runHTML, err)
			}
			logger.Info().Str("path", runHTML).Msg("transcript written")
		}
		return nil
	},
}

type eventCollector struct {
	mu     sync.Mutex
	events []core.Event
}

func (c *eventCollector) Emit(ev core.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *eventCollector) snapshot() []core.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Event(nil), c.events...)
}

func init() {
	runCmd.Flags().StringVar(&runHTML, "html", "", "also write the output as an HTML document")
	runCmd.Flags().BoolVar(&runPlain, "plain", false, "disable colors")
	rootCmd.AddCommand(runCmd)
}
