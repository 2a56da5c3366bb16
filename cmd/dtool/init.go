package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/debugtool/internal/config"
	"github.com/sandevgo/debugtool/internal/service/handlers"
	"github.com/sandevgo/debugtool/internal/service/installer"
	"github.com/sandevgo/debugtool/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Create the runtime directory and configuration",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting setup")

		var names []string
		for _, h := range handlers.NewHandlers() {
			names = append(names, h.Name())
		}

		runtimePath := config.GetRuntimePath()
		state, err := installer.RunWizard(runtimePath, names)
		if err != nil {
			return err
		}

		envPath := filepath.Join(state.RuntimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Setup complete! You can now run 'dtool'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
