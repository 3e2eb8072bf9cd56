package components

import "github.com/abhisek/quizify/internal/ui/theme"

// ContentWidth returns the inner width used for cards so stacked sections
// line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 100)
}

// Card wraps content in a rounded border with an optional title line.
func Card(title, content string, cw int, active bool) string {
	style := theme.Card
	if active {
		style = theme.ActiveCard
	}
	if title != "" {
		content = theme.Title.Render(title) + "\n\n" + content
	}
	return style.Width(cw).Render(content)
}
