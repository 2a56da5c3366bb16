package shell

import (
	"context"
	"errors"
	"strings"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/pkg/conv"
	"github.com/sandevgo/debugtool/pkg/log"
)

var errUsage = errors.New("invalid arguments")

type Action int

const (
	// ActionNone means Text (possibly empty) should be shown.
	ActionNone Action = iota
	ActionExit
	ActionClear
	// ActionSubmitted means the line went to the command queue.
	ActionSubmitted
)

type Result struct {
	Action Action
	Text   string
}

// Router intercepts front-end built-ins. Anything it does not recognise is
// handed to the command queue untouched.
type Router struct {
	commands  map[string]core.Command
	order     []core.Command
	submitter core.Submitter
}

func New(submitter core.Submitter, commands []core.Command) *Router {
	r := &Router{
		commands:  make(map[string]core.Command),
		submitter: submitter,
	}

	for _, cmd := range commands {
		if _, exists := r.commands[cmd.Name()]; exists {
			continue
		}
		r.commands[cmd.Name()] = cmd
		r.order = append(r.order, cmd)
	}
	return r
}

func (r *Router) Handle(ctx context.Context, input string) Result {
	if res, ok := r.Execute(ctx, input); ok {
		return res
	}

	r.submitter.SubmitCommand(input)
	return Result{Action: ActionSubmitted}
}

// Execute runs input if its first word is a built-in.
func (r *Router) Execute(ctx context.Context, input string) (Result, bool) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Result{}, false
	}

	switch parts[0] {
	case core.VerbExit:
		return Result{Action: ActionExit}, true
	case core.VerbClear:
		return Result{Action: ActionClear}, true
	}

	cmd, ok := r.commands[parts[0]]
	if !ok {
		return Result{}, false
	}

	log.FromCtx(ctx).Debug().Str("command", cmd.Name()).Strs("args", parts[1:]).Msg("running built-in")

	md, err := cmd.Execute(ctx, parts[1:])
	if err != nil {
		md = NewResponseFormatter().Error(err)
	}
	return Result{Action: ActionNone, Text: render(ctx, md)}, true
}

func (r *Router) ListCommands() []core.Command {
	res := make([]core.Command, len(r.order))
	copy(res, r.order)
	return res
}

func render(ctx context.Context, md string) string {
	if md == "" {
		return ""
	}
	text, err := conv.MarkdownToText([]byte(md))
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to render built-in output")
		return md
	}
	return text
}
