package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/debugtool/internal/config"
	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/transcript"
	"github.com/sandevgo/debugtool/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var (
	transcriptSession string
	transcriptHTML    string
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Export a recorded console session",
	Long:  `Prints the latest (or the given) session as text, or writes it as an HTML document.`,
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

		id, events, err := transcript.NewExporter(sqlite.NewTranscript(db)).Load(ctx, transcriptSession)
		if err != nil {
			return err
		}

		if transcriptHTML != "" {
			doc := transcript.RenderHTML(fmt.Sprintf("%s session %s", core.ToolName, id), events)
			return os.WriteFile(transcriptHTML, []byte(doc), 0644)
		}

		text, err := transcript.RenderText(events)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	transcriptCmd.Flags().StringVar(&transcriptSession, "session", "", "session id (default: latest)")
	transcriptCmd.Flags().StringVar(&transcriptHTML, "html", "", "write the session as HTML to this file")
	rootCmd.AddCommand(transcriptCmd)
}
