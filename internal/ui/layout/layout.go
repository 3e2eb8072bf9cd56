// Package layout draws the frame around the active screen: a one-line
// title bar, the screen body and a line of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizify/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Each bar is one line of text plus a rule.
	HeaderHeight = 2
	FooterHeight = 2
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

var (
	brandStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.BgCard).Background(theme.Primary).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.Text)
	statusStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	ruleStyle   = lipgloss.NewStyle().Foreground(theme.Border)
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
	hintSep     = descStyle.Render(" · ")
)

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is what remains of totalHeight once header and footer are
// drawn.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small.\n\nResize to at least %d x %d\n(currently %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// RenderHeader draws the brand and title on the left and status, which may
// be empty, on the right.
func RenderHeader(title, status string, width int) string {
	left := brandStyle.Render("quizify") + " " + titleStyle.Render(title)
	right := statusStyle.Render(status)
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-1, 1)

	return left + strings.Repeat(" ", gap) + right + "\n" + rule(width)
}

// RenderFooter draws the key hints. Trailing hints are dropped until the
// line fits width; the first one is always kept.
func RenderFooter(hints []KeyHint, width int) string {
	n := len(hints)
	line := renderHints(hints)
	for n > 1 && lipgloss.Width(line) > width-1 {
		n--
		line = renderHints(hints[:n])
	}
	return rule(width) + "\n " + line
}

func renderHints(hints []KeyHint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return strings.Join(parts, hintSep)
}

func rule(width int) string {
	return ruleStyle.Render(strings.Repeat("─", max(width, 0)))
}

// RenderFrame stacks header, content and footer into exactly height lines.
// Content is padded or clipped to the space in between.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content = lipgloss.NewStyle().
		Width(width).
		Height(body).
		MaxHeight(body).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
