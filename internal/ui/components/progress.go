package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizify/internal/ui/theme"
)

const percentSuffixWidth = len("  100%")

// ProgressBar draws Percent (0 to 1) as a filled track. LabelWidth pads
// Label so bars stacked in a column start at the same offset.
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color // theme.Secondary when nil
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		pad := max(p.LabelWidth-lipgloss.Width(p.Label), 0)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label + strings.Repeat(" ", pad)))
		b.WriteString("  ")
	}

	track := p.Width - lipgloss.Width(b.String())
	if p.ShowPercent {
		track -= percentSuffixWidth
	}
	track = max(track, 4)
	filled := min(max(int(float64(track)*p.Percent), 0), track)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", track-filled)))

	if p.ShowPercent {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}
	return b.String()
}
