package shell

import (
	"github.com/sandevgo/debugtool/internal/core"
)

// NewShell builds the router with every front-end built-in.
func NewShell(submitter core.Submitter, handlers handlerSwitch) *Router {
	help := NewHelpCommand(handlers)
	r := New(submitter, []core.Command{
		help,
		NewPluginsCommand(handlers),
		NewOpenCommand(submitter),
	})
	help.bind(r.ListCommands)
	return r
}
