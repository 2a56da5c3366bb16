package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/dispatcher"
	"github.com/sandevgo/debugtool/internal/service/history"
	"github.com/sandevgo/debugtool/internal/service/shell"
	"github.com/sandevgo/debugtool/internal/service/ui"
	"github.com/sandevgo/debugtool/pkg/log"
)

// maxLines bounds the scrollback kept in memory.
const maxLines = 5000

type eventMsg core.Event

type router interface {
	Handle(ctx context.Context, input string) shell.Result
}

type model struct {
	ctx      context.Context
	shell    router
	history  *history.History
	events   *dispatcher.EventStream
	plain    bool
	viewport viewport.Model
	input    textinput.Model
	lines    []string
	ready    bool
	quitting bool
}

func newModel(ctx context.Context, cfg core.ConsoleConfig, sh router, hist *history.History, events *dispatcher.EventStream) model {
	in := textinput.New()
	in.Prompt = ui.PromptStyle.Render(cfg.GetPrompt())
	in.Placeholder = "type help"
	in.CharLimit = 1024
	in.Focus()

	return model{
		ctx:      ctx,
		shell:    sh,
		history:  hist,
		events:   events,
		plain:    cfg.IsPlain(),
		viewport: viewport.New(80, 20),
		input:    in,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// waitForEvent delivers the next dispatcher event as a message.
func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, err := m.events.Next(m.ctx)
		if err != nil {
			return nil
		}
		return eventMsg(ev)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-2, 10)
		m.ready = true
		m.refresh()

	case eventMsg:
		ev := core.Event(msg)
		if m.plain {
			m.append(ui.PlainEvent(ev))
		} else {
			m.append(ui.RenderEvent(ev))
		}
		return m, m.waitForEvent()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "up":
			if line, ok := m.history.Prev(); ok {
				m.input.SetValue(line)
				m.input.CursorEnd()
			}
			return m, nil
		case "down":
			if line, ok := m.history.Next(); ok {
				m.input.SetValue(line)
				m.input.CursorEnd()
			}
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.history.Add(m.ctx, line)

	res := m.shell.Handle(m.ctx, line)
	switch res.Action {
	case shell.ActionExit:
		m.quitting = true
		return m, tea.Quit
	case shell.ActionClear:
		m.lines = nil
		m.refresh()
	case shell.ActionNone:
		if res.Text != "" {
			m.append(res.Text)
		}
	}
	return m, nil
}

func (m *model) append(text string) {
	m.lines = append(m.lines, text)
	if len(m.lines) > maxLines {
		m.lines = m.lines[len(m.lines)-maxLines:]
	}
	m.refresh()
}

func (m *model) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  Initializing..."
	}
	return m.viewport.View() + "\n" + m.input.View()
}

// Console runs the full screen front-end.
type Console struct {
	cfg     core.ConsoleConfig
	shell   router
	history *history.History
	events  *dispatcher.EventStream
	onExit  func()
}

func NewConsole(
	cfg core.ConsoleConfig,
	sh *shell.Router,
	hist *history.History,
	events *dispatcher.EventStream,
	onExit func(),
) *Console {
	return &Console{
		cfg:     cfg,
		shell:   sh,
		history: hist,
		events:  events,
		onExit:  onExit,
	}
}

func (c *Console) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("console started")

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.cfg.UseAltScreen() {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(newModel(ctx, c.cfg, c.shell, c.history, c.events), opts...)
	_, err := p.Run()

	if c.onExit != nil {
		c.onExit()
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// Shutdown is a no-op: the program stops with the context passed to Start.
func (c *Console) Shutdown(ctx context.Context) error {
	return nil
}
