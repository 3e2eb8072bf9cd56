package study

import (
	"time"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/session"
)

// extractionDoneMsg carries the generator's outcome back to the screen.
type extractionDoneMsg struct {
	ticket   session.Ticket
	document *knowledge.Document
	err      error
	save     bool
}

// sourceLoadedMsg is sent when a file typed into the input has been read.
type sourceLoadedMsg struct {
	path string
	text string
	err  error
}

// advanceTickMsg is a pacing timer firing. It only advances when pace
// still matches and the session is still in stage from.
type advanceTickMsg struct {
	pace uint64
	from session.Stage
}

// dispatchMsg asks the screen to dispatch ev, e.g. from a button.
type dispatchMsg struct {
	ev session.Event
}

// documentSavedMsg reports the result of writing the history entry.
type documentSavedMsg struct {
	id  int
	err error
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time
