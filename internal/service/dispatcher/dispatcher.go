package dispatcher

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/queue"
	"github.com/sandevgo/debugtool/internal/service/source"
	"github.com/sandevgo/debugtool/pkg/log"
)

// maxLineBytes caps a single line read from a command file.
const maxLineBytes = 1024 * 1024

type State int32

const (
	StateIdle State = iota
	StateExpanding
	StateExecuting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExpanding:
		return "expanding"
	case StateExecuting:
		return "executing"
	default:
		return "unknown"
	}
}

// Dispatcher is the single consumer of the command queue. It expands command
// files, runs the `source` built-in and routes everything else through the
// handler registry. All events are emitted from the Start goroutine.
type Dispatcher struct {
	queue    *queue.Queue[core.WorkItem]
	registry core.HandlerRegistry
	resolver *source.Resolver
	sink     core.ResultSink
	state    atomic.Int32
	running  atomic.Bool
	done     chan struct{}

	// MaxSourceDepth limits nested `source` files. Zero means unlimited.
	MaxSourceDepth int
}

func New(registry core.HandlerRegistry, resolver *source.Resolver, sink core.ResultSink) *Dispatcher {
	return &Dispatcher{
		queue:    queue.New[core.WorkItem](),
		registry: registry,
		resolver: resolver,
		sink:     sink,
		done:     make(chan struct{}),
	}
}

func (d *Dispatcher) SubmitCommand(text string) {
	d.queue.Push(core.InlineItem(text))
}

func (d *Dispatcher) SubmitFile(path string) {
	d.queue.Push(core.FileItem(path))
}

func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Start processes queued work until ctx is cancelled. An item already being
// processed when ctx is cancelled runs to completion.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.running.Store(true)
	defer close(d.done)

	logger := log.FromCtx(ctx)
	logger.Info().Str("workdir", d.resolver.WorkDir()).Msg("dispatcher started")

	for {
		item, err := d.queue.Pop(ctx)
		if err != nil {
			logger.Info().Int("pending", d.queue.Len()).Msg("dispatcher stopped")
			return nil
		}

		d.process(ctx, item)
		d.queue.Done()
	}
}

// Shutdown blocks until Start has returned, so no event is emitted after it.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	if !d.running.Load() {
		return nil
	}

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		log.FromCtx(ctx).Warn().Str("state", d.State().String()).Msg("dispatcher shutdown timed out")
		return ctx.Err()
	}
}

// Wait blocks until every submitted item has been processed.
func (d *Dispatcher) Wait(ctx context.Context) error {
	return d.queue.Wait(ctx)
}

func (d *Dispatcher) process(ctx context.Context, item core.WorkItem) {
	log.FromCtx(ctx).Debug().
		Str("kind", item.Kind.String()).
		Str("value", item.Value).
		Msg("dequeued work item")

	switch item.Kind {
	case core.WorkInline:
		d.executeOne(ctx, item.Value, "", 0)
	case core.WorkFile:
		d.expandFile(ctx, d.resolver.Resolve(item.Value, ""), 1)
	}
}

// executeOne is the single entry point for interactive lines and lines read
// from command files. currentFile is empty for interactive input.
func (d *Dispatcher) executeOne(ctx context.Context, command, currentFile string, depth int) {
	command = strings.TrimSpace(command)
	if command == "" || strings.HasPrefix(command, core.CommentPrefix) {
		return
	}

	d.sink.Emit(core.Echo(command))

	verb, rest := splitVerb(command)
	if verb == core.VerbSource {
		args := strings.Fields(rest)
		if len(args) != 1 {
			d.sink.Emit(core.Stderr("syntax error: " + command))
			return
		}
		d.expandFile(ctx, d.resolver.Resolve(args[0], currentFile), depth+1)
		return
	}

	prev := d.state.Swap(int32(StateExecuting))
	outcome, text := d.registry.Dispatch(ctx, command)
	d.state.Store(prev)

	switch outcome {
	case core.OutcomeSuccess:
		d.sink.Emit(core.Stdout(text))
	case core.OutcomeFailed:
		d.sink.Emit(core.Stderr(text))
	default:
		d.sink.Emit(core.Stderr(command + ": Command not found"))
	}
}

func (d *Dispatcher) expandFile(ctx context.Context, path string, depth int) {
	logger := log.FromCtx(ctx)

	if d.MaxSourceDepth > 0 && depth > d.MaxSourceDepth {
		logger.Warn().Str("path", path).Int("depth", depth).Msg("source nesting limit reached")
		d.sink.Emit(core.Stderr("source nesting too deep: " + path))
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to open command file")
		d.sink.Emit(core.Stderr("Cannot open file: " + path))
		return
	}
	defer f.Close()

	prev := d.state.Swap(int32(StateExpanding))
	defer d.state.Store(prev)

	logger.Debug().Str("path", path).Int("depth", depth).Msg("expanding command file")

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		d.executeOne(ctx, scanner.Text(), path, depth)
	}
	if err := scanner.Err(); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to read command file")
		d.sink.Emit(core.Stderr("Cannot open file: " + path))
	}
}

// splitVerb splits on the first run of whitespace.
func splitVerb(command string) (string, string) {
	idx := strings.IndexFunc(command, unicode.IsSpace)
	if idx < 0 {
		return command, ""
	}
	return command[:idx], strings.TrimLeftFunc(command[idx:], unicode.IsSpace)
}
