package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/debugtool/internal/core"
)

var (
	// TitleStyle ANSI 6 (Cyan) for headings
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Gray) for descriptions
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// EchoStyle ANSI 4 (Blue) bold for echoed commands
	EchoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)

	StdoutStyle = lipgloss.NewStyle()

	// StderrStyle ANSI 1 (Red) bold for errors
	StderrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// EchoPrefix marks echoed commands in the output.
const EchoPrefix = "> "

// RenderEvent styles one console event. Errors are followed by a blank line.
func RenderEvent(ev core.Event) string {
	switch ev.Kind {
	case core.EventEcho:
		return EchoStyle.Render(EchoPrefix + ev.Text)
	case core.EventStderr:
		return StderrStyle.Render(ev.Text) + "\n"
	default:
		return StdoutStyle.Render(ev.Text)
	}
}

// PlainEvent is RenderEvent without colors.
func PlainEvent(ev core.Event) string {
	switch ev.Kind {
	case core.EventEcho:
		return EchoPrefix + ev.Text
	case core.EventStderr:
		return ev.Text + "\n"
	default:
		return ev.Text
	}
}
