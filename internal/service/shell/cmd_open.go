package shell

import (
	"context"
	"fmt"

	"github.com/sandevgo/debugtool/internal/core"
)

// OpenCommand queues command files, like picking them in a file dialog.
type OpenCommand struct {
	submitter core.Submitter
	formatter *ResponseFormatter
}

func NewOpenCommand(submitter core.Submitter) *OpenCommand {
	return &OpenCommand{
		submitter: submitter,
		formatter: NewResponseFormatter(),
	}
}

func (c *OpenCommand) Name() string {
	return "open"
}

func (c *OpenCommand) Description() string {
	return "Queue one or more command files"
}

func (c *OpenCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("open file..."), nil
	}

	for _, path := range args {
		c.submitter.SubmitFile(path)
	}
	return c.formatter.Success(fmt.Sprintf("Queued %d file(s)", len(args))), nil
}
