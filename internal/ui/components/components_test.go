package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestMultiChoice_CursorBounds(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"one", "two", "three", "four"})

	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 0, m.Cursor)

	for range 5 {
		m, _ = m.Update(specialKey(tea.KeyDown))
	}
	assert.Equal(t, 3, m.Cursor)
}

func TestMultiChoice_EnterPicksCursor(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"one", "two", "three", "four"})
	m, _ = m.Update(specialKey(tea.KeyDown))

	_, cmd := m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, ChoiceMsg{Index: 1}, runCmd(t, cmd))
}

func TestMultiChoice_LetterPicks(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"one", "two", "three", "four"})

	m, cmd := m.Update(keyPress('c'))
	assert.Equal(t, ChoiceMsg{Index: 2}, runCmd(t, cmd))
	assert.Equal(t, 2, m.Cursor)
}

func TestMultiChoice_RevealIgnoresKeys(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"one", "two", "three", "four"})
	m.Reveal = true
	m.CorrectIndex = 0
	m.Chosen = 1

	_, cmd := m.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, m.IsCorrect())

	view := m.View()
	assert.Contains(t, view, "A)  one")
	assert.Contains(t, view, "● B)  two")
}

func TestChoiceMenu_Horizontal(t *testing.T) {
	m := NewChoiceMenu([]string{"easy", "medium", "hard", "mixed"}, 1)
	assert.Equal(t, "medium", m.SelectedLabel())

	m, _ = m.Update(specialKey(tea.KeyRight))
	assert.Equal(t, "hard", m.SelectedLabel())

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, "hard", m.SelectedLabel(), "vertical keys do not move a horizontal menu")

	for range 3 {
		m, _ = m.Update(specialKey(tea.KeyLeft))
	}
	assert.Equal(t, "easy", m.SelectedLabel(), "stops at the first item")

	m, _ = m.Update(keyPress('l'))
	assert.Equal(t, "medium", m.SelectedLabel())

	assert.NotContains(t, m.View(), "\n")
}

func TestChoiceMenu_OutOfRangeSelection(t *testing.T) {
	m := NewChoiceMenu([]string{"a", "b"}, 7)
	assert.Equal(t, 0, m.Selected)

	empty := NewChoiceMenu(nil, 0)
	empty, _ = empty.Update(specialKey(tea.KeyRight))
	assert.Equal(t, "", empty.SelectedLabel())
}

func TestTextInput_EditClearsMark(t *testing.T) {
	ti := NewTextInput("File:", "notes.md", 0)
	ti.SetValue("notes.md")
	ti.Submit(false)
	assert.Contains(t, ti.View(), "✗")

	ti, _ = ti.Update(keyPress('x'))
	assert.NotContains(t, ti.View(), "✗")
	assert.Equal(t, "notes.mdx", ti.Value())
}

func TestTextInput_ValueIsTrimmed(t *testing.T) {
	ti := NewTextInput("", "", 0)
	ti.SetValue("  a.txt  ")
	assert.Equal(t, "a.txt", ti.Value())
}

func TestProgressBar_Clamps(t *testing.T) {
	full := NewProgressBar("", 1.5, true, 20).View()
	assert.Contains(t, full, "150%")

	empty := NewProgressBar("x", -1, false, 20).View()
	assert.Contains(t, empty, "x")
}

func TestProgressBar_LabelPadding(t *testing.T) {
	a := ProgressBar{Label: "ab", LabelWidth: 6, Percent: 0.5, Width: 30}
	b := ProgressBar{Label: "abcdef", LabelWidth: 6, Percent: 0.5, Width: 30}
	assert.Equal(t, len([]rune(stripANSI(a.View()))), len([]rune(stripANSI(b.View()))))
}

func TestButton_Hotkey(t *testing.T) {
	type pressed struct{}
	b := NewButton("Review", "v", false, func() tea.Cmd {
		return func() tea.Msg { return pressed{} }
	})

	_, cmd := b.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd, "inactive button ignores enter")

	_, cmd = b.Update(keyPress('v'))
	assert.Equal(t, pressed{}, runCmd(t, cmd))

	assert.Contains(t, ButtonRow(b, NewButton("Reset", "r", true, nil)), "[r] Reset")
}

func TestCard(t *testing.T) {
	out := Card("Concepts", "body", 40, true)
	assert.Contains(t, out, "Concepts")
	assert.Contains(t, out, "body")
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 100, ContentWidth(400))
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
