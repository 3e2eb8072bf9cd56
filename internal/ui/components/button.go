package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizify/internal/ui/theme"
)

// Button fires OnPress on its hotkey, or on Enter when it is the active
// (highlighted) button of a row.
type Button struct {
	Label   string
	Key     string
	Active  bool
	OnPress func() tea.Cmd
}

func NewButton(label, key string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Key: key, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || b.OnPress == nil {
		return b, nil
	}
	k := key.String()
	if (b.Key != "" && k == b.Key) || (b.Active && k == "enter") {
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	style := theme.ButtonInactive
	if b.Active {
		style = theme.ButtonActive
	}
	return style.Render(label)
}

// ButtonRow lays buttons out left to right, two spaces apart.
func ButtonRow(buttons ...Button) string {
	views := make([]string, len(buttons))
	for i, b := range buttons {
		views[i] = b.View()
		if i < len(buttons)-1 {
			views[i] += "  "
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
