package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/debugtool/internal/config"
	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/dispatcher"
	"github.com/sandevgo/debugtool/internal/service/handlers"
	"github.com/sandevgo/debugtool/internal/service/history"
	"github.com/sandevgo/debugtool/internal/service/registry"
	"github.com/sandevgo/debugtool/internal/service/shell"
	"github.com/sandevgo/debugtool/internal/service/source"
	"github.com/sandevgo/debugtool/internal/service/transcript"
	"github.com/sandevgo/debugtool/internal/storage/sqlite"
	"github.com/sandevgo/debugtool/pkg/log"
	"github.com/sandevgo/debugtool/pkg/srv"
)

// App is the wired core shared by every front-end.
type App struct {
	Config     *config.AppConfig
	DB         *sql.DB
	Registry   *registry.Registry
	Dispatcher *dispatcher.Dispatcher
	History    *history.History
	Recorder   *transcript.Recorder
	Shell      *shell.Router
}

// NewApp builds the core. Events go to sinks after the transcript recorder.
func NewApp(ctx context.Context, sinks ...core.ResultSink) (*App, []srv.Service, error) {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Configuration
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse App config: %w", err)
	}

	// 2. Storage
	db, err := initStorage(ctx, appCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	services = append(services, srv.NewResource("history database", db.Close))

	hist := history.New(sqlite.NewHistory(db), appCfg.GetHistoryLimit())
	if err := hist.Load(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to load history")
	}

	// 3. Handlers
	reg, err := initHandlers(ctx, appCfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	// 4. Output sinks
	var recorder *transcript.Recorder
	if appCfg.IsTranscriptEnabled() {
		recorder = transcript.NewRecorder(ctx, sqlite.NewTranscript(db))
		logger.Debug().Str("session", recorder.SessionID()).Msg("recording transcript")
		sinks = append([]core.ResultSink{recorder}, sinks...)
	}

	// 5. Dispatcher
	workDir, err := os.Getwd()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}
	disp := dispatcher.New(reg, source.NewResolver(workDir), dispatcher.FanOut(sinks...))
	disp.MaxSourceDepth = appCfg.GetMaxSourceDepth()
	services = append(services, disp)

	return &App{
		Config:     appCfg,
		DB:         db,
		Registry:   reg,
		Dispatcher: disp,
		History:    hist,
		Recorder:   recorder,
		Shell:      shell.NewShell(disp, reg),
	}, services, nil
}

func initStorage(ctx context.Context, cfg core.AppConfig) (*sql.DB, error) {
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

func initHandlers(ctx context.Context, cfg core.AppConfig) (*registry.Registry, error) {
	logger := log.FromCtx(ctx)

	hcfg, err := config.LoadHandlersConfig(cfg.GetHandlersPath())
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	var names []string
	for _, h := range handlers.NewHandlers() {
		enabled := hcfg.IsEnabled(h.Name())
		if err := reg.Register(h, enabled); err != nil {
			return nil, err
		}
		names = append(names, h.Name())
		logger.Debug().Str("handler", h.Name()).Bool("enabled", enabled).Msg("registered handler")
	}

	for _, name := range hcfg.Unknown(names) {
		logger.Warn().Str("handler", name).Msg("handlers config names an unknown handler")
	}
	return reg, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

func ensureRuntime(runtimePath string) error {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}
	return nil
}
