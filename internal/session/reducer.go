package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/abhisek/quizify/internal/knowledge"
)

// ErrAlreadySubmitted is returned when a quiz is submitted twice.
var ErrAlreadySubmitted = errors.New("quiz already submitted")

// TransitionError describes an event that is not valid in the current state.
// The state is left unchanged when it is returned.
type TransitionError struct {
	Stage  Stage
	Event  string
	Reason string
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s in stage %s: %s", e.Event, e.Stage, e.Reason)
}

func (e *TransitionError) Unwrap() error { return e.Err }

func reject(s State, ev Event, reason string) error {
	return &TransitionError{Stage: s.Stage, Event: ev.eventName(), Reason: reason}
}

// Reduce applies ev to s and returns the next state. On error the returned
// state equals s.
func Reduce(s State, ev Event) (State, error) {
	switch e := ev.(type) {
	case SubmitRequest:
		if s.Loading {
			return s, reject(s, ev, "an extraction is already in progress")
		}
		next := s.Clone()
		next.Loading = true
		next.Err = ""
		return next, nil

	case ExtractionSucceeded:
		if !s.Loading {
			return s, reject(s, ev, "no extraction in progress")
		}
		if e.Document == nil {
			return s, reject(s, ev, "missing document")
		}
		next := NewState()
		next.Document = e.Document
		next.Stage = StageConcepts
		next.Reveal.Concepts = true
		return next, nil

	case ExtractionFailed:
		if !s.Loading {
			return s, reject(s, ev, "no extraction in progress")
		}
		next := NewState()
		if e.Err != nil {
			next.Err = e.Err.Error()
		} else {
			next.Err = "extraction failed"
		}
		return next, nil

	case AdvanceRequested:
		next := s.Clone()
		switch s.Stage {
		case StageConcepts:
			next.Stage = StageHierarchy
			next.Reveal.Hierarchy = true
		case StageHierarchy:
			next.Stage = StageQuiz
			next.Reveal.Quiz = true
		default:
			return s, nil
		}
		return next, nil

	case SelectOption:
		if s.Submitted {
			return s, nil
		}
		if s.Stage != StageQuiz || s.Document == nil {
			return s, reject(s, ev, "quiz is not active")
		}
		if _, ok := s.Document.Question(e.Ordinal); !ok {
			return s, reject(s, ev, fmt.Sprintf("unknown question %d", e.Ordinal))
		}
		if !e.Option.Valid() {
			return s, reject(s, ev, fmt.Sprintf("unknown option %q", e.Option))
		}
		next := s.Clone()
		next.Answers[e.Ordinal] = e.Option
		return next, nil

	case SubmitQuiz:
		if s.Submitted {
			return s, &TransitionError{Stage: s.Stage, Event: ev.eventName(), Reason: "already submitted", Err: ErrAlreadySubmitted}
		}
		if s.Stage != StageQuiz || s.Document == nil {
			return s, reject(s, ev, "quiz is not active")
		}
		next := s.Clone()
		next.Score = score(next)
		next.Submitted = true
		next.Stage = StageResults
		return next, nil

	case AttemptAgain:
		if s.Stage != StageResults && s.Stage != StageReview {
			return s, reject(s, ev, "quiz has not been submitted")
		}
		next := s.Clone()
		next.Answers = map[int]knowledge.Option{}
		next.Submitted = false
		next.Score = nil
		next.Stage = StageQuiz
		return next, nil

	case ReviewRequested:
		if s.Stage != StageResults {
			return s, reject(s, ev, "results are not shown")
		}
		next := s.Clone()
		next.Stage = StageReview
		return next, nil

	case BackToResults:
		if s.Stage != StageReview {
			return s, reject(s, ev, "review is not shown")
		}
		next := s.Clone()
		next.Stage = StageResults
		return next, nil

	case Reset:
		return NewState(), nil
	}

	return s, fmt.Errorf("unknown event %T", ev)
}

// score compares every question against the recorded answers. Questions
// without an answer count as wrong.
func score(s State) *Score {
	sc := &Score{Total: len(s.Document.Quiz), WrongOrdinals: []int{}}
	for _, q := range s.Document.Quiz {
		if ans, ok := s.Answers[q.Ordinal]; ok && ans == q.CorrectOption {
			sc.Correct++
			continue
		}
		sc.WrongOrdinals = append(sc.WrongOrdinals, q.Ordinal)
	}
	sort.Ints(sc.WrongOrdinals)
	return sc
}
