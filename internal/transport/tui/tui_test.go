package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/debugtool/internal/config"
	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/dispatcher"
	"github.com/sandevgo/debugtool/internal/service/history"
	"github.com/sandevgo/debugtool/internal/service/shell"
)

type fakeShell struct {
	handled []string
	results map[string]shell.Result
}

func (f *fakeShell) Handle(ctx context.Context, input string) shell.Result {
	f.handled = append(f.handled, input)
	if res, ok := f.results[input]; ok {
		return res
	}
	return shell.Result{Action: shell.ActionSubmitted}
}

func newTestModel(t *testing.T, sh *fakeShell) model {
	t.Helper()
	cfg := &config.ConsoleConfig{Prompt: "> ", Plain: true}
	m := newModel(context.Background(), cfg, sh, history.New(nil, 10), dispatcher.NewEventStream())
	tm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	return tm.(model)
}

func typeLine(t *testing.T, m model, line string) model {
	t.Helper()
	var tm tea.Model = m
	for _, r := range line {
		tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return tm.(model)
}

func TestModel_SubmitAndEvents(t *testing.T) {
	sh := &fakeShell{}
	m := newTestModel(t, sh)

	m = typeLine(t, m, "read_fpga")
	assert.Equal(t, []string{"read_fpga"}, sh.handled)
	assert.Empty(t, m.input.Value())

	tm, cmd := m.Update(eventMsg(core.Echo("read_fpga")))
	assert.NotNil(t, cmd, "keeps listening for events")
	tm, _ = tm.Update(eventMsg(core.Stdout("1 2 3 4 5")))
	m = tm.(model)

	assert.Equal(t, []string{"> read_fpga", "1 2 3 4 5"}, m.lines)
	assert.True(t, strings.Contains(m.View(), "1 2 3 4 5"))
}

func TestModel_BuiltinActions(t *testing.T) {
	sh := &fakeShell{results: map[string]shell.Result{
		"help":  {Action: shell.ActionNone, Text: "Built-in"},
		"clear": {Action: shell.ActionClear},
		"exit":  {Action: shell.ActionExit},
	}}
	m := newTestModel(t, sh)

	m = typeLine(t, m, "help")
	assert.Equal(t, []string{"Built-in"}, m.lines)

	m = typeLine(t, m, "clear")
	assert.Empty(t, m.lines)

	m = typeLine(t, m, "exit")
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestModel_HistoryKeys(t *testing.T) {
	m := newTestModel(t, &fakeShell{})
	m = typeLine(t, m, "read_fpga")
	m = typeLine(t, m, "read_arm")

	tm, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "read_arm", tm.(model).input.Value())
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "read_fpga", tm.(model).input.Value())
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "read_arm", tm.(model).input.Value())
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, tm.(model).input.Value())
}

func TestModel_CtrlC(t *testing.T) {
	m := newTestModel(t, &fakeShell{})
	tm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.True(t, tm.(model).quitting)
}
