// Package theme holds the colors and shared styles of the TUI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#7C3AED") // violet
	Secondary = lipgloss.Color("#0EA5E9") // sky
	Accent    = lipgloss.Color("#FBBF24") // amber
	Success   = lipgloss.Color("#10B981") // emerald
	Error     = lipgloss.Color("#F87171") // red
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#8B95A7")
	BgCard    = lipgloss.Color("#1C1F2B")
	Border    = lipgloss.Color("#3B4252")
)

// Concept heatmap bands, least to most referenced.
var (
	BandCool = lipgloss.Color("#60A5FA")
	BandWarm = lipgloss.Color("#FB923C")
	BandHot  = lipgloss.Color("#DC2626")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func card(border color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2)
}

var (
	Title     = fg(Primary).Bold(true)
	Subtitle  = fg(TextDim)
	Body      = fg(Text)
	Hint      = fg(TextDim).Italic(true)
	ErrorText = fg(Error).Bold(true)

	Card       = card(Border)
	ActiveCard = card(Primary)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)

	ButtonActive   = lipgloss.NewStyle().Background(Primary).Foreground(Text).Bold(true).Padding(0, 2)
	ButtonInactive = card(Border).Foreground(TextDim)
)
