package core

import "context"

// Outcome is a handler's verdict on a command.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeSuccess
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handler implements one domain's command vocabulary. It receives the full,
// trimmed command line and parses its own verb and arguments.
type Handler interface {
	Name() string
	Execute(ctx context.Context, command string) (Outcome, string)
}

// Usage documents a single command syntax for help output.
type Usage struct {
	Syntax  string
	Summary string
}

// Documented is implemented by handlers that can describe their commands.
type Documented interface {
	Usage() []Usage
}

type HandlerRegistry interface {
	Dispatch(ctx context.Context, command string) (Outcome, string)
}

type HandlerSwitch interface {
	SetEnabled(name string, enabled bool) bool
	SetAllEnabled(enabled bool)
}

// ResultSink receives dispatcher events in emission order.
type ResultSink interface {
	Emit(ev Event)
}

// Submitter accepts work for the dispatcher. Implementations never block.
type Submitter interface {
	SubmitCommand(text string)
	SubmitFile(path string)
}
