// Package screen holds the contract between the router and the views it
// stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizify/internal/ui/layout"
)

// Screen is one full-window view. The frame around it (header and footer)
// is drawn by the app, so View only fills the content area.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen put a short status at the right of the
// header, such as "3/10".
type StatusProvider interface {
	Status() string
}
