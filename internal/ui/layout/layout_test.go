package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 24))
	assert.True(t, IsTooSmall(80, 23))
	assert.False(t, IsTooSmall(80, 24))
}

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 20, ContentHeight(24))
	assert.Equal(t, 0, ContentHeight(3))
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Concepts", "medium", 80)
	assert.Contains(t, h, "quizify")
	assert.Contains(t, h, "Concepts")
	assert.Contains(t, h, "medium")
	assert.Equal(t, HeaderHeight, lipgloss.Height(h))
}

func TestRenderFooter_DropsHintsThatDoNotFit(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Submit quiz"},
		{Key: "Tab", Description: "Switch field"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	wide := RenderFooter(hints, 120)
	assert.Contains(t, wide, "Quit")
	assert.Equal(t, FooterHeight, lipgloss.Height(wide))

	narrow := RenderFooter(hints, 30)
	assert.Contains(t, narrow, "Enter")
	assert.NotContains(t, narrow, "Quit")

	tiny := RenderFooter(hints, 5)
	assert.Contains(t, tiny, "Enter", "the first hint survives")
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Quiz", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)

	frame := RenderFrame(header, "body", footer, 80, 24)
	assert.Equal(t, 24, lipgloss.Height(frame))
	assert.True(t, strings.Contains(frame, "body"))

	tall := strings.Repeat("line\n", 40)
	assert.Equal(t, 24, lipgloss.Height(RenderFrame(header, tall, footer, 80, 24)), "long content is clipped")
}

func TestRenderMinSizeMessage(t *testing.T) {
	msg := RenderMinSizeMessage(60, 20)
	assert.Contains(t, msg, "80 x 24")
	assert.Contains(t, msg, "60 x 20")
}
