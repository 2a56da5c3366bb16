package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sandevgo/debugtool/internal/config"
	"github.com/sandevgo/debugtool/internal/service/dispatcher"
	"github.com/sandevgo/debugtool/internal/transport/cli"
	"github.com/sandevgo/debugtool/internal/transport/tui"
	"github.com/sandevgo/debugtool/pkg/log"
	"github.com/sandevgo/debugtool/pkg/srv"
	"github.com/spf13/cobra"
)

var plainConsole bool

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive console",
	Long:  `Starts the interactive console. This is the default command.`,
	RunE:  runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runtimePath := config.GetRuntimePath()
	if err := ensureRuntime(runtimePath); err != nil {
		return err
	}

	ctx, flushLog, err := setupFileLogger(ctx, filepath.Join(runtimePath, "dtool.log"))
	if err != nil {
		return err
	}
	defer flushLog()

	logger := log.FromCtx(ctx)
	logger.Info().Msg("starting debugtool")

	if err := initEnv(ctx, runtimePath); err != nil {
		return fmt.Errorf("failed to init env: %w", err)
	}

	consoleCfg, err := config.LoadConsoleConfig()
	if err != nil {
		return fmt.Errorf("failed to parse Console config: %w", err)
	}
	if plainConsole {
		consoleCfg.Plain = true
	}

	events := dispatcher.NewEventStream()
	app, services, err := NewApp(ctx, events)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	console, err := newConsole(consoleCfg, app, events, cancel)
	if err != nil {
		return err
	}
	services = append(services, console)

	srv.StartServices(ctx, services, cancel)
	srv.ShutdownServices(ctx, services)

	logger.Info().Msg("debugtool has been shut down gracefully")
	return nil
}

func newConsole(cfg *config.ConsoleConfig, app *App, events *dispatcher.EventStream, onExit func()) (srv.Service, error) {
	if cfg.IsPlain() {
		return cli.NewReadLine(cfg, app.Shell, app.History, events, onExit)
	}
	return tui.NewConsole(cfg, app.Shell, app.History, events, onExit), nil
}

func init() {
	consoleCmd.Flags().BoolVar(&plainConsole, "plain", false, "use the line editor instead of the full screen console")
	rootCmd.Flags().BoolVar(&plainConsole, "plain", false, "use the line editor instead of the full screen console")
	rootCmd.AddCommand(consoleCmd)
}
