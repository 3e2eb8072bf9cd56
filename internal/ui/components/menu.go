package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizify/internal/ui/theme"
)

// Menu is a one-line selector moved with left/right (or h/l). It holds a
// choice and never emits commands; callers read SelectedLabel.
type Menu struct {
	Items    []string
	Selected int
}

// NewChoiceMenu selects the first label when selected is out of range.
func NewChoiceMenu(labels []string, selected int) Menu {
	if selected < 0 || selected >= len(labels) {
		selected = 0
	}
	return Menu{Items: labels, Selected: selected}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		m.Selected = max(m.Selected-1, 0)
	case "right", "l":
		m.Selected = min(m.Selected+1, len(m.Items)-1)
	}
	return m, nil
}

func (m Menu) SelectedLabel() string {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return ""
	}
	return m.Items[m.Selected]
}

var menuIdle = lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2)

func (m Menu) View() string {
	parts := make([]string, len(m.Items))
	for i, label := range m.Items {
		if i == m.Selected {
			parts[i] = theme.ButtonActive.Render(label)
		} else {
			parts[i] = menuIdle.Render(label)
		}
	}
	return strings.Join(parts, " ")
}
