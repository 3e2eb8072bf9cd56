package session

import (
	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/quizgen"
)

// Event is a trigger accepted by Reduce. The set is closed; every
// implementation lives in this file.
type Event interface {
	eventName() string
}

// SubmitRequest starts an extraction.
type SubmitRequest struct {
	Request quizgen.Request
}

// ExtractionSucceeded delivers the normalized document.
type ExtractionSucceeded struct {
	Document *knowledge.Document
}

// ExtractionFailed reports a failed extraction.
type ExtractionFailed struct {
	Err error
}

// AdvanceRequested moves concepts to hierarchy and hierarchy to quiz.
type AdvanceRequested struct{}

// SelectOption records an answer for one question.
type SelectOption struct {
	Ordinal int
	Option  knowledge.Option
}

// SubmitQuiz scores the quiz.
type SubmitQuiz struct{}

// AttemptAgain clears answers and returns to the quiz.
type AttemptAgain struct{}

// ReviewRequested opens the per-question review.
type ReviewRequested struct{}

// BackToResults leaves the review.
type BackToResults struct{}

// Reset discards everything and returns to input.
type Reset struct{}

func (SubmitRequest) eventName() string       { return "submit-request" }
func (ExtractionSucceeded) eventName() string { return "extraction-succeeded" }
func (ExtractionFailed) eventName() string    { return "extraction-failed" }
func (AdvanceRequested) eventName() string    { return "advance-requested" }
func (SelectOption) eventName() string        { return "select-option" }
func (SubmitQuiz) eventName() string          { return "submit-quiz" }
func (AttemptAgain) eventName() string        { return "attempt-again" }
func (ReviewRequested) eventName() string     { return "review" }
func (BackToResults) eventName() string       { return "back-to-results" }
func (Reset) eventName() string               { return "reset" }

// EventName returns the wire name of ev.
func EventName(ev Event) string {
	return ev.eventName()
}
