package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/debugtool/internal/config"
	"github.com/sandevgo/debugtool/pkg/env"
	"github.com/sandevgo/debugtool/pkg/log"
	"github.com/spf13/cobra"
)

var writeConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		runtimePath := config.GetRuntimePath()
		if err := initEnv(ctx, runtimePath); err != nil {
			return err
		}

		appCfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}
		consoleCfg, err := config.LoadConsoleConfig()
		if err != nil {
			return err
		}

		var content string
		for _, c := range []any{appCfg, consoleCfg} {
			s, err := env.MarshalEnv(c)
			if err != nil {
				return err
			}
			content += s
		}

		if !writeConfig {
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		}

		if err := ensureRuntime(runtimePath); err != nil {
			return err
		}
		envPath := filepath.Join(runtimePath, ".env")
		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", envPath, err)
		}
		log.FromCtx(ctx).Info().Str("path", envPath).Msg("configuration written")
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&writeConfig, "write", false, "write the configuration to the runtime .env file")
	rootCmd.AddCommand(configCmd)
}
