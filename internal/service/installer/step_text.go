package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextStep collects a single env value. An empty answer keeps the default.
type TextStep struct {
	input  textinput.Model
	envKey string
	title  string
	def    string
}

func NewTextStep(envKey, title, def string) Step {
	in := textinput.New()
	in.Focus()
	in.CharLimit = 255
	in.Width = 40
	in.Placeholder = def

	return &TextStep{
		input:  in,
		envKey: envKey,
		title:  title,
		def:    def,
	}
}

func (s *TextStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TextStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			value := s.input.Value()
			if value == "" {
				value = s.def
			}
			state.EnvVars[s.envKey] = value
			return nil, nil
		}
	}
	return s, cmd
}

func (s *TextStep) View(state *InstallState) string {
	return fmt.Sprintf("%s (default %q):\n\n%s\n\n(press enter to confirm)\n",
		s.title, s.def, s.input.View())
}
