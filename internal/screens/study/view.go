package study

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizify/internal/analytics"
	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/session"
	"github.com/abhisek/quizify/internal/ui/components"
	"github.com/abhisek/quizify/internal/ui/theme"
)

const previewLines = 6

func (s *StudyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.state.Loading && s.state.Document == nil:
		body = s.renderLoading(cw)
	case s.showOverview && s.state.Document != nil:
		body = s.renderOverview(cw)
	default:
		switch s.state.Stage {
		case session.StageConcepts:
			body = s.renderConcepts(cw)
		case session.StageHierarchy:
			body = s.renderHierarchy(cw)
		case session.StageQuiz:
			body = s.renderQuiz(cw)
		case session.StageResults:
			body = s.renderResults(cw)
		case session.StageReview:
			body = s.renderReview(cw)
		default:
			body = s.renderInput(cw)
		}
	}

	if s.notice != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.Accent).Width(cw).Render(s.notice)
	}

	return fit(lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+body), height)
}

// fit drops lines beyond height.
func fit(content string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (s *StudyScreen) renderLoading(cw int) string {
	frame := spinnerFrames[s.spin%len(spinnerFrames)]
	msg := fmt.Sprintf("%s  Extracting concepts and building your quiz...", frame)
	if src := displayName(s.source); src != "" {
		msg += "\n\n" + theme.Hint.Render("from "+src)
	}
	return components.Card("", theme.Body.Render(msg), cw, true)
}

func (s *StudyScreen) renderInput(cw int) string {
	var b strings.Builder

	b.WriteString(s.path.View())
	b.WriteString("\n\n")

	if s.text != "" && s.path.Value() == s.source {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %d characters", displayName(s.source), len([]rune(s.text)))))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 4).Render(preview(s.text, previewLines)))
		b.WriteString("\n\n")
	}

	label := "Difficulty"
	if s.focus == focusDifficulty {
		label = theme.Selected.Render(label)
	} else {
		label = theme.Subtitle.Render(label)
	}
	b.WriteString(label + "  " + s.difficulty.View())

	if s.state.Err != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(cw - 4).Render("Extraction failed: " + s.state.Err))
	}

	return components.Card("What do you want to study?", b.String(), cw, true)
}

func (s *StudyScreen) renderConcepts(cw int) string {
	doc := s.state.Document
	chips := analytics.Heatmap(doc)
	concepts := doc.ConceptIndex()

	nameWidth := 0
	for _, c := range chips {
		nameWidth = max(nameWidth, min(lipgloss.Width(c.Name), 28))
	}

	var b strings.Builder
	for i, chip := range chips {
		if i > 0 {
			b.WriteString("\n")
		}
		bar := components.ProgressBar{
			Label:      truncate(chip.Name, 28),
			LabelWidth: nameWidth,
			Percent:    chip.NormalizedImportance,
			Width:      cw - 30,
			Fill:       bandColor(chip.Band()),
		}
		stats := fmt.Sprintf("  %s hard %d · refs %d",
			lipgloss.NewStyle().Foreground(bandColor(chip.Band())).Render("●"),
			chip.DifficultyDensity, chip.TotalReferences)
		b.WriteString(bar.View() + theme.Subtitle.Render(stats))
		if def := concepts[chip.Name].Definition; def != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Width(cw - 4).Render("  " + truncate(def, 2*cw)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(legend())

	return components.Card(fmt.Sprintf("Key concepts (%d)", len(chips)), b.String(), cw, true)
}

func legend() string {
	part := func(band analytics.Band, label string) string {
		return lipgloss.NewStyle().Foreground(bandColor(band)).Render("●") + " " + theme.Subtitle.Render(label)
	}
	return part(analytics.BandCool, "no hard questions") + "   " +
		part(analytics.BandWarm, "one") + "   " +
		part(analytics.BandHot, "two or more") + "   " +
		theme.Subtitle.Render("bar = importance")
}

func bandColor(b analytics.Band) color.Color {
	switch b {
	case analytics.BandHot:
		return theme.BandHot
	case analytics.BandWarm:
		return theme.BandWarm
	default:
		return theme.BandCool
	}
}

func (s *StudyScreen) renderHierarchy(cw int) string {
	return components.Card("Topic hierarchy", hierarchyTree(s.state.Document), cw, true)
}

func hierarchyTree(doc *knowledge.Document) string {
	if doc == nil || len(doc.Hierarchy) == 0 {
		return theme.Hint.Render("No topics were identified.")
	}

	known := doc.ConceptIndex()
	var b strings.Builder
	for i, t := range doc.Hierarchy {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Selected.Render("▸ " + t.Name))
		for _, st := range t.Subtopics {
			b.WriteString("\n    ")
			b.WriteString(theme.Body.Render(st.Name))
			if len(st.ConceptNames) == 0 {
				continue
			}
			names := make([]string, len(st.ConceptNames))
			for j, n := range st.ConceptNames {
				if _, ok := known[n]; ok {
					names[j] = lipgloss.NewStyle().Foreground(theme.Secondary).Render(n)
				} else {
					names[j] = theme.Subtitle.Render(n)
				}
			}
			b.WriteString(theme.Subtitle.Render(": ") + strings.Join(names, theme.Subtitle.Render(", ")))
		}
	}
	return b.String()
}

func (s *StudyScreen) renderQuiz(cw int) string {
	doc := s.state.Document
	if len(doc.Quiz) == 0 {
		return components.Card("Quiz", theme.Hint.Render("This document has no questions. Press S to finish."), cw, true)
	}
	s.question = min(s.question, len(doc.Quiz)-1)
	q := doc.Quiz[s.question]

	var b strings.Builder
	b.WriteString(s.questionStrip())
	b.WriteString("\n\n")
	b.WriteString(s.choice().View())
	b.WriteString("\n")
	b.WriteString(difficultyTag(q.Difficulty))

	title := fmt.Sprintf("Question %d of %d · %d answered", s.question+1, len(doc.Quiz), len(s.state.Answers))
	return components.Card(title, b.String(), cw, true)
}

// questionStrip shows one marker per question: filled when answered,
// highlighted for the current one.
func (s *StudyScreen) questionStrip() string {
	var parts []string
	for i, q := range s.state.Document.Quiz {
		_, answered := s.state.Answers[q.Ordinal]
		mark := "○"
		if answered {
			mark = "●"
		}
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		switch {
		case i == s.question:
			style = theme.Selected
		case answered:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		parts = append(parts, style.Render(mark))
	}
	return strings.Join(parts, " ")
}

func difficultyTag(d knowledge.QuestionDifficulty) string {
	c := theme.Success
	switch d {
	case knowledge.DifficultyHard:
		c = theme.Error
	case knowledge.DifficultyMedium:
		c = theme.Accent
	}
	return lipgloss.NewStyle().Foreground(c).Render(string(d))
}

func (s *StudyScreen) renderResults(cw int) string {
	sum := session.Summarize(s.state)
	if sum == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%d / %d correct", sum.Correct, sum.Total)))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Score", float64(sum.Percent)/100, true, cw-6)
	bar.Fill = verdictColor(sum.Verdict)
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(verdictColor(sum.Verdict)).Bold(true).Render(sum.Message))
	b.WriteString("\n\n")

	if len(sum.Gaps) > 0 {
		b.WriteString(theme.Subtitle.Render("Concepts to revisit"))
		b.WriteString("\n")
		for _, g := range sum.Gaps {
			b.WriteString(theme.Body.Render("  • " + g))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(components.ButtonRow(s.resultButtons()...))

	return components.Card("Results", b.String(), cw, true)
}

func verdictColor(v session.Verdict) color.Color {
	switch v {
	case session.VerdictPerfect, session.VerdictPassed:
		return theme.Success
	case session.VerdictGoodEffort:
		return theme.Accent
	default:
		return theme.Error
	}
}

func (s *StudyScreen) renderReview(cw int) string {
	doc := s.state.Document
	if len(doc.Quiz) == 0 {
		return components.Card("Review", theme.Hint.Render("Nothing to review."), cw, true)
	}
	s.question = min(s.question, len(doc.Quiz)-1)
	q := doc.Quiz[s.question]
	mc := s.choice()

	var b strings.Builder
	b.WriteString(mc.View())
	b.WriteString("\n")

	if ans, ok := s.state.Answers[q.Ordinal]; ok {
		b.WriteString(theme.Subtitle.Render("Your answer: "))
		if mc.IsCorrect() {
			b.WriteString(theme.Correct.Render(string(ans) + " ✓"))
		} else {
			b.WriteString(theme.Incorrect.Render(string(ans) + " ✗"))
		}
	} else {
		b.WriteString(theme.Incorrect.Render("Not answered"))
	}
	b.WriteString(theme.Subtitle.Render("   Correct: "))
	b.WriteString(theme.Correct.Render(string(q.CorrectOption)))
	b.WriteString("   ")
	b.WriteString(difficultyTag(q.Difficulty))

	if len(q.RelatedConcepts) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Related: " + strings.Join(q.RelatedConcepts, ", ")))
	}

	title := fmt.Sprintf("Review %d of %d", s.question+1, len(doc.Quiz))
	return components.Card(title, b.String(), cw, true)
}

func (s *StudyScreen) renderOverview(cw int) string {
	doc := s.state.Document
	names := make([]string, len(doc.Concepts))
	for i, c := range doc.Concepts {
		names[i] = c.Name
	}
	concepts := components.Card("Concepts", theme.Body.Width(cw-4).Render(strings.Join(names, " · ")), cw, false)
	return concepts + "\n" + components.Card("Topics", hierarchyTree(doc), cw, false)
}

func preview(text string, lines int) string {
	all := strings.Split(text, "\n")
	if len(all) <= lines {
		return text
	}
	return strings.Join(all[:lines], "\n") + "\n…"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func displayName(src string) string {
	switch src {
	case "":
		return ""
	case "-":
		return "stdin"
	}
	return filepath.Base(src)
}
