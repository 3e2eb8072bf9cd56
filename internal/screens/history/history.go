// Package history is the picker for previously extracted documents.
package history

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizify/internal/router"
	"github.com/abhisek/quizify/internal/screen"
	"github.com/abhisek/quizify/internal/store"
	"github.com/abhisek/quizify/internal/ui/layout"
	"github.com/abhisek/quizify/internal/ui/theme"
)

// Limit is how many saved documents the picker loads.
const Limit = store.DefaultHistorySize

const sourceWidth = 24

// DocumentChosenMsg is the pop result delivered to the screen below.
type DocumentChosenMsg struct {
	Saved store.SavedDocument
}

type loadedMsg struct {
	docs []store.SavedDocument
	err  error
}

var (
	rowStyle      = lipgloss.NewStyle().Foreground(theme.Text)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(theme.TextDim).Align(lipgloss.Center)
	failureStyle  = lipgloss.NewStyle().Foreground(theme.Error).Align(lipgloss.Center)
)

// HistoryScreen lists saved documents newest first. Enter pops with a
// DocumentChosenMsg; Esc pops with nothing.
type HistoryScreen struct {
	repo     store.DocumentRepo
	docs     []store.SavedDocument
	selected int
	offset   int
	loaded   bool
	err      error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.DocumentRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		docs, err := repo.List(context.Background(), Limit)
		return loadedMsg{docs: docs, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "Saved documents" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Study"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.docs, s.err = msg.docs, msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop(nil)
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = max(min(s.selected+1, len(s.docs)-1), 0)
		case "enter":
			if s.selected < len(s.docs) {
				return s, router.Pop(DocumentChosenMsg{Saved: s.docs[s.selected]})
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return failureStyle.Width(width).Render("\n\nError: " + s.err.Error())
	case !s.loaded:
		return noticeStyle.Width(width).Render("\n\nLoading saved documents...")
	case len(s.docs) == 0:
		return noticeStyle.Width(width).Italic(true).Render("\n\nNothing saved yet. Extract a document first.")
	}

	rows := max(height-2, 1)
	s.scrollTo(rows)

	var b strings.Builder
	b.WriteString("\n")
	for i := s.offset; i < min(s.offset+rows, len(s.docs)); i++ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.row(i)))
		b.WriteString("\n")
	}
	return b.String()
}

// scrollTo keeps the selection inside a window of rows lines.
func (s *HistoryScreen) scrollTo(rows int) {
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}
}

func (s *HistoryScreen) row(i int) string {
	d := s.docs[i]
	marker, style := "  ", rowStyle
	if i == s.selected {
		marker, style = "> ", selectedStyle
	}
	return style.Render(fmt.Sprintf("%s%s  %-*s  %-6s  %2d concepts  %2d questions",
		marker, d.Timestamp.Local().Format("Jan 02 15:04"), sourceWidth, displaySource(d.Source),
		d.Difficulty, d.Concepts, d.Questions))
}

// displaySource names a source by its file name, cut to sourceWidth runes.
func displaySource(src string) string {
	var name string
	switch src {
	case "":
		name = "(unnamed)"
	case "-":
		name = "stdin"
	default:
		name = filepath.Base(src)
	}
	if r := []rune(name); len(r) > sourceWidth {
		name = string(r[:sourceWidth-1]) + "…"
	}
	return name
}
