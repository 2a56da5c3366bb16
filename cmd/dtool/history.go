package main

import (
	"fmt"

	"github.com/sandevgo/debugtool/internal/config"
	"github.com/sandevgo/debugtool/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var clearHistory bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print or clear the console history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		appCfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}

		db, err := initStorage(ctx, appCfg)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := sqlite.NewHistory(db)
		if clearHistory {
			return repo.Clear(ctx)
		}

		lines, err := repo.GetEntries(ctx, appCfg.GetHistoryLimit())
		if err != nil {
			return err
		}
		for i, line := range lines {
			fmt.Fprintf(cmd.OutOrStdout(), "%5d  %s\n", i+1, line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "delete all history entries")
	rootCmd.AddCommand(historyCmd)
}
