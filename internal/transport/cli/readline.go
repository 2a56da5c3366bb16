package cli

import (
	"context"
	"errors"
	"io"

	"github.com/chzyer/readline"
	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/dispatcher"
	"github.com/sandevgo/debugtool/internal/service/history"
	"github.com/sandevgo/debugtool/internal/service/shell"
	"github.com/sandevgo/debugtool/pkg/log"
)

const clearScreen = "\033[H\033[2J"

// ReadLine is the line-editor console. Command output arrives asynchronously
// from the dispatcher and is printed above the prompt.
type ReadLine struct {
	shell   *shell.Router
	history *history.History
	events  *dispatcher.EventStream
	onExit  func()
	rl      *readline.Instance
	printer *Printer
}

func NewReadLine(
	cfg core.ConsoleConfig,
	sh *shell.Router,
	hist *history.History,
	events *dispatcher.EventStream,
	onExit func(),
) (*ReadLine, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 cfg.GetPrompt(),
		InterruptPrompt:        "^C",
		EOFPrompt:              core.VerbExit,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, err
	}

	for _, line := range hist.Entries() {
		_ = rl.SaveHistory(line)
	}

	return &ReadLine{
		shell:   sh,
		history: hist,
		events:  events,
		onExit:  onExit,
		rl:      rl,
		printer: NewPrinter(rl.Stdout(), cfg.IsPlain()),
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("console started")

	go r.printer.Pump(ctx, r.events)
	defer r.exit()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		r.history.Add(ctx, line)
		if line != "" {
			_ = r.rl.SaveHistory(line)
		}

		res := r.shell.Handle(ctx, line)
		switch res.Action {
		case shell.ActionExit:
			return nil
		case shell.ActionClear:
			_, _ = io.WriteString(r.rl.Stdout(), clearScreen)
		case shell.ActionNone:
			r.printer.Print(res.Text)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

func (r *ReadLine) exit() {
	if r.onExit != nil {
		r.onExit()
	}
}
