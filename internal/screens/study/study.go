package study

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/quizgen"
	"github.com/abhisek/quizify/internal/router"
	"github.com/abhisek/quizify/internal/screen"
	"github.com/abhisek/quizify/internal/screens/history"
	"github.com/abhisek/quizify/internal/session"
	"github.com/abhisek/quizify/internal/source"
	"github.com/abhisek/quizify/internal/store"
	"github.com/abhisek/quizify/internal/ui/components"
	"github.com/abhisek/quizify/internal/ui/layout"
)

// Pacing holds the delays, measured from a successful extraction, after
// which the screen advances on its own. A zero delay disables that step.
type Pacing struct {
	ToHierarchy time.Duration
	ToQuiz      time.Duration
}

// DefaultPacing returns the standard staged reveal.
func DefaultPacing() Pacing {
	return Pacing{ToHierarchy: 950 * time.Millisecond, ToQuiz: 2000 * time.Millisecond}
}

// Options configures a StudyScreen.
type Options struct {
	Generator quizgen.Generator

	// Docs enables the saved document picker and, with Save, records every
	// successful extraction.
	Docs store.DocumentRepo
	Save bool

	// Source and Text preload the draft. With AutoStart the extraction
	// begins as soon as the screen starts.
	Source     string
	Text       string
	Difficulty quizgen.Level
	AutoStart  bool

	// Document starts the session from an earlier extraction.
	Document *knowledge.Document

	Timeout time.Duration
	Pacing  Pacing
	Logger  *slog.Logger
}

type inputFocus int

const (
	focusPath inputFocus = iota
	focusDifficulty
)

const spinnerInterval = 120 * time.Millisecond

// StudyScreen drives one session.Machine from the keyboard.
type StudyScreen struct {
	opts    Options
	log     *slog.Logger
	machine *session.Machine
	state   session.State

	// Draft input. It lives outside the machine so it survives failures
	// and resets.
	path       components.TextInput
	difficulty components.Menu
	focus      inputFocus
	text       string
	source     string

	question     int // index into the quiz
	cursor       int // option cursor on the current question
	showOverview bool

	pace   uint64
	spin   int
	notice string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)

// New creates a StudyScreen with a fresh session.
func New(opts Options) *StudyScreen {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	labels := make([]string, len(quizgen.Levels))
	selected := 0
	for i, l := range quizgen.Levels {
		labels[i] = string(l)
		if l == opts.Difficulty {
			selected = i
		}
	}

	path := components.NewTextInput("File:", "path/to/notes.md", 0)
	if opts.Source != "" {
		path.SetValue(opts.Source)
	}

	m := session.NewMachine()
	return &StudyScreen{
		opts:       opts,
		log:        log,
		machine:    m,
		state:      m.Snapshot(),
		path:       path,
		difficulty: components.NewChoiceMenu(labels, selected),
		text:       opts.Text,
		source:     opts.Source,
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.path.Init()}
	switch {
	case s.opts.Document != nil:
		cmds = append(cmds, s.begin(quizgen.StaticGenerator{Document: s.opts.Document}, quizgen.Request{Difficulty: s.level()}, false))
	case s.opts.AutoStart && s.text != "":
		cmds = append(cmds, s.begin(s.opts.Generator, s.request(), s.opts.Save))
	}
	return tea.Batch(cmds...)
}

func (s *StudyScreen) Title() string {
	switch s.state.Stage {
	case session.StageConcepts:
		return "Concepts"
	case session.StageHierarchy:
		return "Topic hierarchy"
	case session.StageQuiz:
		return "Quiz"
	case session.StageResults:
		return "Results"
	case session.StageReview:
		return "Review"
	default:
		return "Study material"
	}
}

// Status shows the requested difficulty and whether an extraction runs.
func (s *StudyScreen) Status() string {
	if s.state.Loading {
		return spinnerFrames[s.spin%len(spinnerFrames)] + " extracting"
	}
	return string(s.level())
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.state.Loading {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	switch s.state.Stage {
	case session.StageConcepts, session.StageHierarchy:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "R", Description: "New text"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.StageQuiz:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "←→", Description: "Question"},
			{Key: "S", Description: "Submit"},
			{Key: "O", Description: "Overview"},
			{Key: "R", Description: "New text"},
		}
	case session.StageResults:
		return []layout.KeyHint{
			{Key: "A", Description: "Attempt again"},
			{Key: "V", Description: "Review"},
			{Key: "R", Description: "New text"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.StageReview:
		return []layout.KeyHint{
			{Key: "←→", Description: "Question"},
			{Key: "B", Description: "Back"},
			{Key: "A", Description: "Attempt again"},
			{Key: "R", Description: "New text"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Extract"},
		{Key: "Tab", Description: "Switch field"},
	}
	if s.opts.Docs != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+O", Description: "Saved"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case extractionDoneMsg:
		return s, s.handleExtraction(msg)

	case sourceLoadedMsg:
		return s, s.handleSourceLoaded(msg)

	case advanceTickMsg:
		if msg.pace != s.pace || s.state.Stage != msg.from || s.state.Loading {
			return s, nil
		}
		return s, s.dispatch(session.AdvanceRequested{})

	case dispatchMsg:
		return s, s.dispatch(msg.ev)

	case documentSavedMsg:
		if msg.err != nil {
			s.log.Warn("save document failed", "error", msg.err)
			s.notice = "Could not save this document: " + msg.err.Error()
		} else {
			s.log.Debug("document saved", "id", msg.id)
		}
		return s, nil

	case history.DocumentChosenMsg:
		return s, s.handleSavedDocument(msg.Saved)

	case components.ChoiceMsg:
		return s, s.choose(msg.Index)

	case spinnerTickMsg:
		if !s.state.Loading {
			return s, nil
		}
		s.spin++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.state.Stage == session.StageInput && s.focus == focusPath {
		var cmd tea.Cmd
		s.path, cmd = s.path.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Snapshot returns the current session state.
func (s *StudyScreen) Snapshot() session.State {
	return s.machine.Snapshot()
}

func (s *StudyScreen) level() quizgen.Level {
	if l, ok := quizgen.ParseLevel(s.difficulty.SelectedLabel()); ok {
		return l
	}
	return quizgen.LevelMedium
}

func (s *StudyScreen) request() quizgen.Request {
	return quizgen.Request{Text: s.text, Difficulty: s.level()}
}

func (s *StudyScreen) sync() {
	s.state = s.machine.Snapshot()
}

// begin starts an extraction with gen. The generator runs inside a command
// so the UI keeps rendering while it is outstanding.
func (s *StudyScreen) begin(gen quizgen.Generator, req quizgen.Request, save bool) tea.Cmd {
	if gen == nil {
		s.notice = "No generation service is configured."
		return nil
	}
	ticket, err := s.machine.Begin(req)
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.sync()
	s.notice = ""
	s.spin = 0

	timeout := s.opts.Timeout
	run := func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		doc, err := gen.Generate(ctx, req)
		return extractionDoneMsg{ticket: ticket, document: doc, err: err, save: save}
	}
	return tea.Batch(spinnerTick(), run)
}

func (s *StudyScreen) handleExtraction(msg extractionDoneMsg) tea.Cmd {
	err := s.machine.Complete(msg.ticket, msg.document, msg.err)
	if errors.Is(err, session.ErrStale) {
		s.log.Debug("dropped stale extraction result")
		return nil
	}
	if err != nil {
		s.log.Warn("apply extraction result", "error", err)
	}
	s.sync()

	if msg.err != nil {
		s.log.Info("extraction failed", "error", msg.err)
		return nil
	}

	s.question, s.cursor = 0, 0
	s.showOverview = false
	s.path.Blur()

	cmds := []tea.Cmd{s.schedulePacing()}
	if msg.save && s.opts.Docs != nil && s.state.Document != nil {
		cmds = append(cmds, s.saveDocument(s.state.Document))
	}
	return tea.Batch(cmds...)
}

func (s *StudyScreen) schedulePacing() tea.Cmd {
	s.pace++
	p := s.opts.Pacing
	var cmds []tea.Cmd
	if p.ToHierarchy > 0 {
		cmds = append(cmds, advanceAfter(p.ToHierarchy, s.pace, session.StageConcepts))
	}
	if p.ToQuiz > 0 {
		cmds = append(cmds, advanceAfter(p.ToQuiz, s.pace, session.StageHierarchy))
	}
	return tea.Batch(cmds...)
}

func advanceAfter(d time.Duration, pace uint64, from session.Stage) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return advanceTickMsg{pace: pace, from: from}
	})
}

func (s *StudyScreen) saveDocument(doc *knowledge.Document) tea.Cmd {
	repo := s.opts.Docs
	src, level := s.source, s.level()
	return func() tea.Msg {
		saved, err := quizgen.SaveDocument(context.Background(), repo, src, level, doc, store.DefaultHistorySize)
		if saved == nil {
			return documentSavedMsg{err: err}
		}
		return documentSavedMsg{id: saved.ID, err: err}
	}
}

func (s *StudyScreen) handleSavedDocument(saved store.SavedDocument) tea.Cmd {
	doc, err := quizgen.LoadDocument(&saved)
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	if l, ok := quizgen.ParseLevel(saved.Difficulty); ok {
		s.selectLevel(l)
	}
	s.source = saved.Source
	s.path.SetValue(saved.Source)
	return s.begin(quizgen.StaticGenerator{Document: doc}, quizgen.Request{Difficulty: s.level()}, false)
}

func (s *StudyScreen) selectLevel(l quizgen.Level) {
	for i, v := range quizgen.Levels {
		if v == l {
			s.difficulty.Selected = i
		}
	}
}

// submit starts an extraction from the draft, reading the file first when
// the path was edited.
func (s *StudyScreen) submit() tea.Cmd {
	path := s.path.Value()
	if path != "" && path != s.source {
		return loadSource(path)
	}
	if s.text == "" {
		s.path.Submit(false)
		s.notice = "Enter the path of a file to study."
		return nil
	}
	return s.begin(s.opts.Generator, s.request(), s.opts.Save)
}

func loadSource(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := source.LoadFile(path)
		return sourceLoadedMsg{path: path, text: text, err: err}
	}
}

func (s *StudyScreen) handleSourceLoaded(msg sourceLoadedMsg) tea.Cmd {
	if msg.err != nil {
		s.path.Submit(false)
		s.notice = msg.err.Error()
		return nil
	}
	if msg.text == "" {
		s.path.Submit(false)
		s.notice = fmt.Sprintf("%s contains no text.", msg.path)
		return nil
	}
	s.path.Submit(true)
	s.text, s.source = msg.text, msg.path
	return s.begin(s.opts.Generator, s.request(), s.opts.Save)
}

// dispatch applies ev and keeps the local view state in step with it.
func (s *StudyScreen) dispatch(ev session.Event) tea.Cmd {
	if err := s.machine.Dispatch(ev); err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	prev := s.state.Stage
	s.sync()

	switch ev.(type) {
	case session.Reset:
		s.pace++
		s.question, s.cursor = 0, 0
		s.showOverview = false
		s.focus = focusPath
		return s.path.Focus()
	case session.AttemptAgain:
		s.question, s.cursor = 0, 0
	case session.ReviewRequested:
		s.question = s.firstWrong()
	case session.AdvanceRequested:
		if prev == session.StageHierarchy && s.state.Stage == session.StageQuiz {
			s.question, s.cursor = 0, 0
		}
	}
	return nil
}

// choose records an answer for the current question and moves on to the
// next unanswered one.
func (s *StudyScreen) choose(index int) tea.Cmd {
	doc := s.state.Document
	if s.state.Stage != session.StageQuiz || doc == nil || s.question >= len(doc.Quiz) {
		return nil
	}
	if index < 0 || index >= len(knowledge.AllOptions) {
		return nil
	}
	q := doc.Quiz[s.question]
	cmd := s.dispatch(session.SelectOption{Ordinal: q.Ordinal, Option: knowledge.AllOptions[index]})
	if next, ok := s.nextUnanswered(); ok {
		s.moveTo(next)
	}
	return cmd
}

func (s *StudyScreen) nextUnanswered() (int, bool) {
	quiz := s.state.Document.Quiz
	for step := 1; step <= len(quiz); step++ {
		i := (s.question + step) % len(quiz)
		if _, ok := s.state.Answers[quiz[i].Ordinal]; !ok {
			return i, true
		}
	}
	return 0, false
}

func (s *StudyScreen) firstWrong() int {
	if s.state.Score == nil || len(s.state.Score.WrongOrdinals) == 0 || s.state.Document == nil {
		return 0
	}
	for i, q := range s.state.Document.Quiz {
		if q.Ordinal == s.state.Score.WrongOrdinals[0] {
			return i
		}
	}
	return 0
}

func (s *StudyScreen) moveTo(i int) {
	if s.state.Document == nil || len(s.state.Document.Quiz) == 0 {
		return
	}
	n := len(s.state.Document.Quiz)
	s.question = ((i % n) + n) % n
	s.cursor = 0
	if s.state.Stage == session.StageQuiz {
		if ans, ok := s.state.Answers[s.state.Document.Quiz[s.question].Ordinal]; ok {
			s.cursor = ans.Index()
		}
	}
}

func (s *StudyScreen) submitQuiz() tea.Cmd {
	if !s.state.AllAnswered() {
		left := len(s.state.Document.Quiz) - len(s.state.Answers)
		s.notice = fmt.Sprintf("Answer every question before submitting (%d left).", left)
		if _, answered := s.state.Answers[s.state.Document.Quiz[s.question].Ordinal]; answered {
			if next, ok := s.nextUnanswered(); ok {
				s.moveTo(next)
			}
		}
		return nil
	}
	return s.dispatch(session.SubmitQuiz{})
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if s.state.Loading {
		if key == "esc" {
			return s.dispatch(session.Reset{})
		}
		return nil
	}

	switch s.state.Stage {
	case session.StageInput:
		return s.handleInputKey(msg)

	case session.StageConcepts, session.StageHierarchy:
		switch key {
		case "enter", "space", "n", "right":
			return s.dispatch(session.AdvanceRequested{})
		case "r":
			return s.dispatch(session.Reset{})
		}

	case session.StageQuiz:
		switch key {
		case "right", "n", "tab":
			s.moveTo(s.question + 1)
			return nil
		case "left", "p", "shift+tab":
			s.moveTo(s.question - 1)
			return nil
		case "s":
			return s.submitQuiz()
		case "o":
			s.showOverview = !s.showOverview
			return nil
		case "r":
			return s.dispatch(session.Reset{})
		}
		if s.showOverview {
			return nil
		}
		mc, cmd := s.choice().Update(msg)
		s.cursor = mc.Cursor
		return cmd

	case session.StageResults:
		if key == "o" {
			s.showOverview = !s.showOverview
			return nil
		}
		var cmds []tea.Cmd
		for _, b := range s.resultButtons() {
			_, cmd := b.Update(msg)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)

	case session.StageReview:
		switch key {
		case "right", "n", "tab":
			s.moveTo(s.question + 1)
		case "left", "p", "shift+tab":
			s.moveTo(s.question - 1)
		case "b", "esc":
			return s.dispatch(session.BackToResults{})
		case "a":
			return s.dispatch(session.AttemptAgain{})
		case "r":
			return s.dispatch(session.Reset{})
		}
	}
	return nil
}

func (s *StudyScreen) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab":
		if s.focus == focusPath {
			s.focus = focusDifficulty
			s.path.Blur()
			return nil
		}
		s.focus = focusPath
		return s.path.Focus()
	case "enter":
		return s.submit()
	case "ctrl+o":
		if s.opts.Docs == nil {
			return nil
		}
		return router.Push(history.New(s.opts.Docs))
	}

	if s.focus == focusDifficulty {
		var cmd tea.Cmd
		s.difficulty, cmd = s.difficulty.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	s.path, cmd = s.path.Update(msg)
	return cmd
}

func (s *StudyScreen) resultButtons() []components.Button {
	send := func(ev session.Event) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return dispatchMsg{ev: ev} }
		}
	}
	return []components.Button{
		components.NewButton("Attempt again", "a", true, send(session.AttemptAgain{})),
		components.NewButton("Review answers", "v", false, send(session.ReviewRequested{})),
		components.NewButton("New text", "r", false, send(session.Reset{})),
	}
}

// choice builds the option selector for the current question.
func (s *StudyScreen) choice() components.MultiChoice {
	doc := s.state.Document
	if doc == nil || s.question >= len(doc.Quiz) {
		return components.NewMultiChoice("", nil)
	}
	q := doc.Quiz[s.question]
	mc := components.NewMultiChoice(q.Text, q.Options[:])
	mc.Cursor = s.cursor
	if ans, ok := s.state.Answers[q.Ordinal]; ok {
		mc.Chosen = ans.Index()
	}
	if s.state.Stage == session.StageReview {
		mc.Reveal = true
		mc.CorrectIndex = q.CorrectOption.Index()
	}
	return mc
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
