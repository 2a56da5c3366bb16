package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// HandlersStep chooses which command handlers start enabled.
type HandlersStep struct {
	names   []string
	enabled []bool
	cursor  int
}

func NewHandlersStep(names []string) Step {
	enabled := make([]bool, len(names))
	for i := range enabled {
		enabled[i] = true
	}
	return &HandlersStep{
		names:   names,
		enabled: enabled,
	}
}

func (s *HandlersStep) Init() tea.Cmd {
	return nil
}

func (s *HandlersStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if len(s.names) == 0 {
		return nil, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.names)-1 {
				s.cursor++
			}
		case " ", "x":
			s.enabled[s.cursor] = !s.enabled[s.cursor]
		case "enter":
			for i, name := range s.names {
				state.Handlers[name] = s.enabled[i]
			}
			return nil, nil
		}
	}
	return s, nil
}

func (s *HandlersStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select the handlers enabled at startup:\n\n")
	for i, name := range s.names {
		mark := "[ ]"
		if s.enabled[i] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, name)
		if s.cursor == i {
			b.WriteString(selStyle.Render(line) + "\n")
		} else {
			b.WriteString(itemStyle.Render(line) + "\n")
		}
	}
	b.WriteString("\n(space to toggle, enter to confirm)\n")
	return b.String()
}
