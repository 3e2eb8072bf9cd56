// Package app hosts the Bubble Tea program: a screen stack framed by a
// header and footer.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizify/internal/router"
	"github.com/abhisek/quizify/internal/screen"
	"github.com/abhisek/quizify/internal/screens/study"
	"github.com/abhisek/quizify/internal/ui/layout"
)

var (
	rootHints = []layout.KeyHint{{Key: "Enter", Description: "Select"}, {Key: "Ctrl+C", Description: "Quit"}}
	backHints = []layout.KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Ctrl+C", Description: "Quit"}}
)

// AppModel owns the terminal size and the screen stack.
type AppModel struct {
	router        *router.Router
	width, height int
}

func newAppModel(root screen.Screen) AppModel {
	return AppModel{router: router.New(root)}
}

func (m AppModel) Init() tea.Cmd { return m.router.Init() }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		// Esc on the root screen is the screen's own business.
		if key == "esc" && m.router.Depth() > 1 {
			return m, router.Pop(nil)
		}
	}
	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	switch {
	case m.width == 0 || m.height == 0:
		return v
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	v.SetContent(layout.RenderFrame(header, m.router.View(m.width, bodyHeight), footer, m.width, m.height))
	return v
}

// footerHints prefers the screen's own hints over the stack defaults.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return backHints
	}
	return rootHints
}

// Run blocks until the study session is quit.
func Run(opts study.Options) error {
	if _, err := tea.NewProgram(newAppModel(study.New(opts))).Run(); err != nil {
		return fmt.Errorf("run study session: %w", err)
	}
	return nil
}
