package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizify/internal/ui/theme"
)

type inputMark int

const (
	markNone inputMark = iota
	markAccepted
	markRejected
)

var (
	inputLabel    = lipgloss.NewStyle().Foreground(theme.TextDim)
	inputAccepted = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	inputRejected = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
)

// TextInput is a labelled bubbles text field that can show whether its
// last submitted value was accepted. Any edit clears the mark.
type TextInput struct {
	Model textinput.Model
	Label string
	mark  inputMark
}

// NewTextInput returns a focused input. A charLimit of 0 keeps the bubbles
// default.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if charLimit > 0 {
		m.CharLimit = charLimit
	}
	m.Focus()
	return TextInput{Model: m, Label: label}
}

func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	old := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != old {
		t.mark = markNone
	}
	return t, cmd
}

func (t TextInput) View() string {
	var b strings.Builder
	if t.Label != "" {
		b.WriteString(inputLabel.Render(t.Label + " "))
	}
	b.WriteString(t.Model.View())
	switch t.mark {
	case markAccepted:
		b.WriteString(" " + inputAccepted)
	case markRejected:
		b.WriteString(" " + inputRejected)
	}
	return b.String()
}

// Value is the input with surrounding whitespace removed.
func (t TextInput) Value() string { return strings.TrimSpace(t.Model.Value()) }

func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.mark = markNone
}

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

func (t *TextInput) Blur() { t.Model.Blur() }

// Submit records whether the current value was accepted.
func (t *TextInput) Submit(accepted bool) {
	t.mark = markRejected
	if accepted {
		t.mark = markAccepted
	}
}
