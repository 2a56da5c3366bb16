package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/debugtool/internal/service/registry"
)

type handlerSwitch interface {
	handlerLister
	SetEnabled(name string, enabled bool) bool
	SetAllEnabled(enabled bool)
}

type PluginsCommand struct {
	handlers  handlerSwitch
	formatter *ResponseFormatter
}

func NewPluginsCommand(handlers handlerSwitch) *PluginsCommand {
	return &PluginsCommand{
		handlers:  handlers,
		formatter: NewResponseFormatter(),
	}
}

func (c *PluginsCommand) Name() string {
	return "plugins"
}

func (c *PluginsCommand) Description() string {
	return "List, enable or disable command handlers"
}

func (c *PluginsCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 || args[0] == "list" {
		return c.list(), nil
	}

	var enabled bool
	switch args[0] {
	case "enable":
		enabled = true
	case "disable":
		enabled = false
	default:
		return c.usage(), nil
	}

	// handler names may contain spaces
	name := strings.Join(args[1:], " ")
	if name == "" {
		return c.usage(), nil
	}

	if name == "all" {
		c.handlers.SetAllEnabled(enabled)
		return c.formatter.Success(fmt.Sprintf("All handlers %s", stateWord(enabled))), nil
	}

	if !c.handlers.SetEnabled(name, enabled) {
		return "", fmt.Errorf("%w: unknown handler %q", errUsage, name)
	}
	return c.formatter.Success(fmt.Sprintf("%s %s", name, stateWord(enabled))), nil
}

func (c *PluginsCommand) list() string {
	infos := c.handlers.List()
	if len(infos) == 0 {
		return c.formatter.Info("No handlers registered")
	}

	items := make([]string, 0, len(infos))
	for _, h := range infos {
		items = append(items, fmt.Sprintf("%s  ›  `%s`", h.Name, stateWord(h.Enabled)))
	}
	return c.formatter.Combine(
		c.formatter.Info("Handlers"),
		c.formatter.List(items),
	)
}

func (c *PluginsCommand) usage() string {
	return c.formatter.Combine(
		c.formatter.Usage("plugins [list|enable|disable] [name|all]"),
		c.formatter.Tip("plugins disable ARM Debug Handler"),
	)
}

func stateWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

var _ handlerSwitch = (*registry.Registry)(nil)
