package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/debugtool/internal/config"
	"github.com/sandevgo/debugtool/internal/service/handlers"
	"github.com/sandevgo/debugtool/internal/service/ui"
	"github.com/spf13/cobra"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins [enable|disable <name|all>]",
	Short: "Show or change which handlers start enabled",
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

		path := appCfg.GetHandlersPath()
		hcfg, err := config.LoadHandlersConfig(path)
		if err != nil {
			return err
		}

		var names []string
		for _, h := range handlers.NewHandlers() {
			names = append(names, h.Name())
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, ui.TitleStyle.Render("HANDLERS"))
			for _, name := range names {
				state := "disabled"
				if hcfg.IsEnabled(name) {
					state = "enabled"
				}
				fmt.Fprintf(out, "  %-24s %s\n", name, ui.DescStyle.Render(state))
			}
			return nil
		}

		if len(args) < 2 || (args[0] != "enable" && args[0] != "disable") {
			return fmt.Errorf("usage: %s", cmd.Use)
		}
		enabled := args[0] == "enable"
		target := strings.Join(args[1:], " ")

		var changed []string
		for _, name := range names {
			if target == "all" || target == name {
				changed = append(changed, name)
			}
		}
		if len(changed) == 0 {
			return fmt.Errorf("unknown handler %q", target)
		}

		if err := ensureRuntime(runtimePath); err != nil {
			return err
		}
		for _, name := range changed {
			hcfg.Handlers[name] = config.HandlerSettings{Enabled: &enabled}
		}
		if err := hcfg.Save(path); err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s\n", strings.Join(changed, ", "), args[0]+"d")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}
