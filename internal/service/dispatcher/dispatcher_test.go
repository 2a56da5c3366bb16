package dispatcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/registry"
	"github.com/sandevgo/debugtool/internal/service/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	events []core.Event
}

func (c *collector) Emit(ev core.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *collector) take() []core.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.events
	c.events = nil
	return res
}

// verbHandler answers a fixed set of verbs.
type verbHandler struct {
	name    string
	replies map[string]struct {
		outcome core.Outcome
		text    string
	}
	gate    chan struct{}
	entered chan struct{}
}

func newVerbHandler(name string) *verbHandler {
	return &verbHandler{
		name: name,
		replies: make(map[string]struct {
			outcome core.Outcome
			text    string
		}),
	}
}

func (h *verbHandler) on(verb string, outcome core.Outcome, text string) *verbHandler {
	h.replies[verb] = struct {
		outcome core.Outcome
		text    string
	}{outcome, text}
	return h
}

func (h *verbHandler) Name() string { return h.name }

func (h *verbHandler) Execute(_ context.Context, command string) (core.Outcome, string) {
	if h.gate != nil {
		h.entered <- struct{}{}
		<-h.gate
	}
	verb := strings.Fields(command)[0]
	r, ok := h.replies[verb]
	if !ok {
		return core.OutcomeNotFound, ""
	}
	return r.outcome, r.text
}

type harness struct {
	d    *Dispatcher
	reg  *registry.Registry
	sink *collector
	dir  string
}

func newHarness(t *testing.T, handlers ...core.Handler) *harness {
	t.Helper()

	reg := registry.New()
	for _, h := range handlers {
		require.NoError(t, reg.Register(h, true))
	}

	dir := t.TempDir()
	sink := &collector{}
	d := New(reg, source.NewResolver(dir), sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return &harness{d: d, reg: reg, sink: sink, dir: dir}
}

func (h *harness) wait(t *testing.T) []core.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.d.Wait(ctx))
	return h.sink.take()
}

func (h *harness) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fpgaHandler() *verbHandler {
	return newVerbHandler("FPGA Debug Handler").
		on("read_fpga", core.OutcomeSuccess, "1 2 3 4 5").
		on("write_fpga", core.OutcomeSuccess, "write fpga success").
		on("bad_fpga", core.OutcomeFailed, "bad_fpga: syntax error")
}

func TestDispatcher_ExecuteOne(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []core.Event
	}{
		{
			name:    "empty line emits nothing",
			command: "",
			want:    nil,
		},
		{
			name:    "blank line emits nothing",
			command: "   \t ",
			want:    nil,
		},
		{
			name:    "comment emits nothing",
			command: "# read_fpga",
			want:    nil,
		},
		{
			name:    "indented comment emits nothing",
			command: "   # note",
			want:    nil,
		},
		{
			name:    "success",
			command: "read_fpga",
			want:    []core.Event{core.Echo("read_fpga"), core.Stdout("1 2 3 4 5")},
		},
		{
			name:    "surrounding whitespace is stripped",
			command: "  write_fpga 0x10  ",
			want:    []core.Event{core.Echo("write_fpga 0x10"), core.Stdout("write fpga success")},
		},
		{
			name:    "handler failure",
			command: "bad_fpga",
			want:    []core.Event{core.Echo("bad_fpga"), core.Stderr("bad_fpga: syntax error")},
		},
		{
			name:    "not found",
			command: "bogus_cmd arg",
			want:    []core.Event{core.Echo("bogus_cmd arg"), core.Stderr("bogus_cmd arg: Command not found")},
		},
		{
			name:    "source without path",
			command: "source",
			want:    []core.Event{core.Echo("source"), core.Stderr("syntax error: source")},
		},
		{
			name:    "source with two paths",
			command: "source a.cmd b.cmd",
			want:    []core.Event{core.Echo("source a.cmd b.cmd"), core.Stderr("syntax error: source a.cmd b.cmd")},
		},
	}

	h := newHarness(t, fpgaHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.d.SubmitCommand(tt.command)
			assert.Equal(t, tt.want, h.wait(t))
		})
	}
}

func TestDispatcher_NotFoundWhenAllDisabled(t *testing.T) {
	h := newHarness(t, fpgaHandler(), newVerbHandler("ARM Debug Handler").on("read_arm", core.OutcomeSuccess, "x"))
	h.reg.SetAllEnabled(false)

	for _, cmd := range []string{"read_fpga", "read_arm", "anything at all"} {
		h.d.SubmitCommand(cmd)
		assert.Equal(t, []core.Event{core.Echo(cmd), core.Stderr(cmd + ": Command not found")}, h.wait(t))
	}
}

func TestDispatcher_EchoPrecedesOutput(t *testing.T) {
	h := newHarness(t, fpgaHandler())
	cmds := []string{"read_fpga", "bogus", "bad_fpga", "write_fpga"}
	for _, c := range cmds {
		h.d.SubmitCommand(c)
	}

	events := h.wait(t)
	require.Len(t, events, 2*len(cmds))
	for i, c := range cmds {
		assert.Equal(t, core.Echo(c), events[2*i])
		assert.NotEqual(t, core.EventEcho, events[2*i+1].Kind)
	}
}

func TestDispatcher_SourceNested(t *testing.T) {
	h := newHarness(t, fpgaHandler())

	h.writeFile(t, "scripts/inner/leaf.cmd", "write_fpga\n")
	h.writeFile(t, "scripts/child.cmd", "# child\nread_fpga\nsource inner/leaf.cmd\n")
	main := h.writeFile(t, "scripts/main.cmd", "\nread_fpga\n   \nsource child.cmd\nbogus\n")

	h.d.SubmitCommand("source " + main)
	events := h.wait(t)

	assert.Equal(t, []core.Event{
		core.Echo("source " + main),
		core.Echo("read_fpga"),
		core.Stdout("1 2 3 4 5"),
		core.Echo("source child.cmd"),
		core.Echo("read_fpga"),
		core.Stdout("1 2 3 4 5"),
		core.Echo("source inner/leaf.cmd"),
		core.Echo("write_fpga"),
		core.Stdout("write fpga success"),
		core.Echo("bogus"),
		core.Stderr("bogus: Command not found"),
	}, events)
}

func TestDispatcher_SourceRelativeToWorkDir(t *testing.T) {
	h := newHarness(t, fpgaHandler())
	h.writeFile(t, "rel.cmd", "read_fpga\n")

	h.d.SubmitCommand("source rel.cmd")
	assert.Equal(t, []core.Event{
		core.Echo("source rel.cmd"),
		core.Echo("read_fpga"),
		core.Stdout("1 2 3 4 5"),
	}, h.wait(t))
}

func TestDispatcher_SourceMissingFileContinues(t *testing.T) {
	h := newHarness(t, fpgaHandler())
	main := h.writeFile(t, "main.cmd", "source missing.cmd\nread_fpga\n")

	h.d.SubmitFile(main)
	h.d.SubmitCommand("write_fpga")

	assert.Equal(t, []core.Event{
		core.Echo("source missing.cmd"),
		core.Stderr("Cannot open file: " + filepath.Join(h.dir, "missing.cmd")),
		core.Echo("read_fpga"),
		core.Stdout("1 2 3 4 5"),
		core.Echo("write_fpga"),
		core.Stdout("write fpga success"),
	}, h.wait(t))
}

func TestDispatcher_SourceDirectoryIsUnreadable(t *testing.T) {
	h := newHarness(t, fpgaHandler())
	require.NoError(t, os.Mkdir(filepath.Join(h.dir, "adir"), 0755))

	h.d.SubmitCommand("source adir")
	h.d.SubmitCommand("read_fpga")

	assert.Equal(t, []core.Event{
		core.Echo("source adir"),
		core.Stderr("Cannot open file: " + filepath.Join(h.dir, "adir")),
		core.Echo("read_fpga"),
		core.Stdout("1 2 3 4 5"),
	}, h.wait(t))
}

func TestDispatcher_SubmitFile(t *testing.T) {
	h := newHarness(t, fpgaHandler())
	h.writeFile(t, "batch.cmd", "read_fpga\n# done\n")

	h.d.SubmitFile("batch.cmd")
	assert.Equal(t, []core.Event{
		core.Echo("read_fpga"),
		core.Stdout("1 2 3 4 5"),
	}, h.wait(t))

	h.d.SubmitFile("nope.cmd")
	assert.Equal(t, []core.Event{
		core.Stderr("Cannot open file: " + filepath.Join(h.dir, "nope.cmd")),
	}, h.wait(t))
}

func TestDispatcher_MaxSourceDepth(t *testing.T) {
	h := newHarness(t, fpgaHandler())
	h.d.MaxSourceDepth = 3
	loop := h.writeFile(t, "loop.cmd", "source loop.cmd\n")

	h.d.SubmitFile(loop)
	events := h.wait(t)

	require.Len(t, events, 4)
	for _, ev := range events[:3] {
		assert.Equal(t, core.Echo("source loop.cmd"), ev)
	}
	assert.Equal(t, core.Stderr("source nesting too deep: "+loop), events[3])
}

func TestDispatcher_ToggleAppliesToNextCommand(t *testing.T) {
	gated := fpgaHandler()
	gated.gate = make(chan struct{})
	gated.entered = make(chan struct{}, 1)
	h := newHarness(t, gated)

	h.d.SubmitCommand("read_fpga")
	select {
	case <-gated.entered:
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
	assert.Equal(t, StateExecuting, h.d.State())

	// The in-flight command already passed its enabled check.
	h.reg.SetEnabled("FPGA Debug Handler", false)
	close(gated.gate)

	h.d.SubmitCommand("read_fpga")
	assert.Equal(t, []core.Event{
		core.Echo("read_fpga"),
		core.Stdout("1 2 3 4 5"),
		core.Echo("read_fpga"),
		core.Stderr("read_fpga: Command not found"),
	}, h.wait(t))
	assert.Equal(t, StateIdle, h.d.State())
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	d := New(registry.New(), source.NewResolver(t.TempDir()), &collector{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- d.Start(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

func TestDispatcher_ShutdownWaitsForInFlightFile(t *testing.T) {
	gated := fpgaHandler()
	gated.gate = make(chan struct{})
	gated.entered = make(chan struct{}, 3)

	reg := registry.New()
	require.NoError(t, reg.Register(gated, true))
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "batch.cmd"), []byte("read_fpga\nread_fpga\nread_fpga\n"), 0644))
	sink := &collector{}
	d := New(reg, source.NewResolver(dir), sink)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = d.Start(ctx) }()

	d.SubmitFile("batch.cmd")
	select {
	case <-gated.entered:
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
	cancel()

	stopped := make(chan error, 1)
	go func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		stopped <- d.Shutdown(sctx)
	}()

	select {
	case <-stopped:
		t.Fatal("shutdown returned while a command was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(gated.gate)
	require.NoError(t, <-stopped)

	events := sink.take()
	assert.Len(t, events, 6, "every line of the file is processed")
	assert.Equal(t, core.Stdout("1 2 3 4 5"), events[5])

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, sink.take(), "no events after shutdown")
}

func TestDispatcher_ShutdownWithoutStart(t *testing.T) {
	d := New(registry.New(), source.NewResolver(t.TempDir()), &collector{})
	assert.NoError(t, d.Shutdown(context.Background()))
}

func TestSplitVerb(t *testing.T) {
	tests := []struct {
		in, verb, rest string
	}{
		{"read_fpga", "read_fpga", ""},
		{"source  a.cmd", "source", "a.cmd"},
		{"wr_fpga_reg\t0x10 0x20", "wr_fpga_reg", "0x10 0x20"},
	}
	for _, tt := range tests {
		verb, rest := splitVerb(tt.in)
		assert.Equal(t, tt.verb, verb, tt.in)
		assert.Equal(t, tt.rest, rest, tt.in)
	}
}

func TestEventStream(t *testing.T) {
	s := NewEventStream()
	sink := FanOut(s, nil)

	sink.Emit(core.Echo("a"))
	sink.Emit(core.Stdout("b"))
	require.Equal(t, 2, s.Len())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ev, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Echo("a"), ev)

	ev, err = s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Stdout("b"), ev)

	short, cancelShort := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelShort()
	_, err = s.Next(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFanOutOrder(t *testing.T) {
	var order []string
	a := SinkFunc(func(ev core.Event) { order = append(order, "a:"+ev.Text) })
	b := SinkFunc(func(ev core.Event) { order = append(order, "b:"+ev.Text) })

	sink := FanOut(a, b)
	sink.Emit(core.Echo("1"))
	sink.Emit(core.Echo("2"))

	assert.Equal(t, []string{"a:1", "b:1", "a:2", "b:2"}, order)
}
