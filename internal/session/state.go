package session

import (
	"fmt"

	"github.com/abhisek/quizify/internal/knowledge"
)

// Stage is the current step of a study session.
type Stage int

const (
	StageInput     Stage = iota // Waiting for text and difficulty
	StageConcepts               // Showing extracted concepts
	StageHierarchy              // Showing the topic hierarchy
	StageQuiz                   // Answering questions
	StageResults                // Score and learning gaps
	StageReview                 // Per-question review after submission
)

var stageNames = [...]string{"input", "concepts", "hierarchy", "quiz", "results", "review"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// MarshalText encodes the stage by name.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a stage name.
func (s *Stage) UnmarshalText(b []byte) error {
	for i, n := range stageNames {
		if n == string(b) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", b)
}

// RevealFlags control staged disclosure of the derived views.
type RevealFlags struct {
	Concepts  bool `json:"concepts"`
	Hierarchy bool `json:"hierarchy"`
	Quiz      bool `json:"quiz"`
}

// Score is the outcome of a submitted quiz.
type Score struct {
	Correct       int   `json:"correct"`
	Total         int   `json:"total"`
	WrongOrdinals []int `json:"wrongOrdinals"` // ascending
}

// State is the full session state. It is only changed through Reduce.
type State struct {
	Stage     Stage
	Document  *knowledge.Document
	Answers   map[int]knowledge.Option
	Submitted bool
	Score     *Score
	Reveal    RevealFlags

	// Loading is set while an extraction is outstanding. It is independent
	// of Stage so the previous view can still be rendered.
	Loading bool

	// Err holds the message of the last failed extraction.
	Err string
}

// NewState returns the state of a fresh session.
func NewState() State {
	return State{
		Stage:   StageInput,
		Answers: map[int]knowledge.Option{},
	}
}

// Clone returns a copy of s that shares only the immutable Document.
func (s State) Clone() State {
	out := s
	out.Answers = make(map[int]knowledge.Option, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	if s.Score != nil {
		sc := *s.Score
		sc.WrongOrdinals = append(make([]int, 0, len(s.Score.WrongOrdinals)), s.Score.WrongOrdinals...)
		out.Score = &sc
	}
	return out
}

// AllAnswered reports whether every question has a recorded answer.
func (s State) AllAnswered() bool {
	if s.Document == nil {
		return false
	}
	for _, q := range s.Document.Quiz {
		if _, ok := s.Answers[q.Ordinal]; !ok {
			return false
		}
	}
	return true
}
