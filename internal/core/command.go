package core

import "context"

// Command is a front-end built-in, executed before anything reaches the queue.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args []string) (string, error)
}
