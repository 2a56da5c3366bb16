package shell

import (
	"context"
	"fmt"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/registry"
)

type handlerLister interface {
	List() []registry.Info
}

type HelpCommand struct {
	handlers  handlerLister
	builtins  func() []core.Command
	formatter *ResponseFormatter
}

func NewHelpCommand(handlers handlerLister) *HelpCommand {
	return &HelpCommand{
		handlers:  handlers,
		formatter: NewResponseFormatter(),
	}
}

// bind lets help list the router it belongs to.
func (c *HelpCommand) bind(builtins func() []core.Command) {
	c.builtins = builtins
}

func (c *HelpCommand) Name() string {
	return core.VerbHelp
}

func (c *HelpCommand) Description() string {
	return "Show available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, args []string) (string, error) {
	builtins := []string{
		fmt.Sprintf("`%s` - Leave the console", core.VerbExit),
		fmt.Sprintf("`%s` - Clear the output", core.VerbClear),
		fmt.Sprintf("`%s file` - Run the commands in file", core.VerbSource),
	}
	if c.builtins != nil {
		for _, cmd := range c.builtins() {
			builtins = append(builtins, fmt.Sprintf("`%s` - %s", cmd.Name(), cmd.Description()))
		}
	}

	sections := []string{
		c.formatter.Info(fmt.Sprintf("%s %s", core.ToolName, core.ToolVersion)),
		c.formatter.Section("Built-in", c.formatter.List(builtins)),
	}

	for _, h := range c.handlers.List() {
		if !h.Enabled {
			continue
		}
		items := make([]string, 0, len(h.Usage))
		for _, u := range h.Usage {
			items = append(items, fmt.Sprintf("`%s` - %s", u.Syntax, u.Summary))
		}
		if len(items) == 0 {
			items = append(items, "no usage available")
		}
		sections = append(sections, c.formatter.Section(h.Name, c.formatter.List(items)))
	}

	sections = append(sections, c.formatter.Tip("lines starting with # are ignored"))
	return c.formatter.Combine(sections...), nil
}
