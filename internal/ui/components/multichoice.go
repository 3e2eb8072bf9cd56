package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizify/internal/ui/theme"
)

// OptionLabels are the labels shown in front of each option.
var OptionLabels = [4]string{"A", "B", "C", "D"}

// MultiChoice renders one four-option question. It does not own the
// answer: the caller passes the chosen index in and reads Cursor out.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int

	// Chosen is the recorded answer, or -1.
	Chosen int

	// Reveal shows the correct option and marks a wrong choice.
	Reveal       bool
	CorrectIndex int
}

// NewMultiChoice creates a multiple-choice view with no recorded answer.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		Chosen:       -1,
		CorrectIndex: -1,
	}
}

// ChoiceMsg is returned when an option is picked with Enter, Space or its
// letter key.
type ChoiceMsg struct {
	Index int
}

// Update moves the cursor and reports picks. It ignores keys once revealed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Reveal {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter", "space", " ":
		return m, m.pick(m.Cursor)
	}

	for i, label := range OptionLabels {
		if i < len(m.Options) && strings.EqualFold(key, label) {
			m.Cursor = i
			return m, m.pick(i)
		}
	}
	return m, nil
}

func (m MultiChoice) pick(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: i} }
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		if i >= len(OptionLabels) {
			break
		}
		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}
		mark := "○"
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, OptionLabels[i], opt)

		var style lipgloss.Style
		switch {
		case m.Reveal && i == m.CorrectIndex:
			style = theme.Correct
		case m.Reveal && i == m.Chosen:
			style = theme.Incorrect
		case m.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		case i == m.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect reports whether the recorded answer is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Chosen >= 0 && m.Chosen == m.CorrectIndex
}
