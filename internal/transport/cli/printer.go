package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/dispatcher"
	"github.com/sandevgo/debugtool/internal/service/ui"
)

// Printer is a ResultSink writing events to a terminal or file.
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	plain bool
}

func NewPrinter(out io.Writer, plain bool) *Printer {
	return &Printer{out: out, plain: plain}
}

func (p *Printer) Emit(ev core.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.plain {
		fmt.Fprintln(p.out, ui.PlainEvent(ev))
		return
	}
	fmt.Fprintln(p.out, ui.RenderEvent(ev))
}

// Print writes front-end output that did not come from the dispatcher.
func (p *Printer) Print(text string) {
	if text == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, text)
}

// Pump forwards stream events to the printer until ctx is done.
func (p *Printer) Pump(ctx context.Context, stream *dispatcher.EventStream) {
	for {
		ev, err := stream.Next(ctx)
		if err != nil {
			return
		}
		p.Emit(ev)
	}
}
