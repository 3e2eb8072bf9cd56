package session

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/quizgen"
)

var (
	// ErrBusy is returned when an extraction is started while another one
	// is still outstanding.
	ErrBusy = errors.New("an extraction is already in progress")

	// ErrStale is returned when an extraction completes after the session
	// was reset or a newer extraction was started. Its result is dropped.
	ErrStale = errors.New("extraction result discarded")
)

// Ticket identifies one outstanding extraction.
type Ticket struct {
	epoch uint64
}

// Machine serializes events for one session. All methods are safe for
// concurrent use; triggers never interleave mid-transition.
type Machine struct {
	mu    sync.Mutex
	state State
	epoch uint64
}

// NewMachine returns a machine in the fresh state.
func NewMachine() *Machine {
	return &Machine{state: NewState()}
}

// Dispatch applies ev. Extraction lifecycle events should go through Begin
// and Complete instead so stale completions are detected.
func (m *Machine) Dispatch(ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := ev.(Reset); ok {
		m.epoch++
	}
	return m.apply(ev)
}

// Snapshot returns a deep copy of the current state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Machine) snapshot() State {
	s := m.state.Clone()
	s.Document = m.state.Document.Clone()
	return s
}

// Begin marks the session as loading for req.
func (m *Machine) Begin(req quizgen.Request) (Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Loading {
		return Ticket{}, ErrBusy
	}
	if err := m.apply(SubmitRequest{Request: req}); err != nil {
		return Ticket{}, err
	}
	m.epoch++
	return Ticket{epoch: m.epoch}, nil
}

// Complete delivers the outcome of the extraction identified by t.
// It returns ErrStale if the session moved on in the meantime.
func (m *Machine) Complete(t Ticket, doc *knowledge.Document, genErr error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.epoch != m.epoch || !m.state.Loading {
		return ErrStale
	}
	if genErr == nil && doc == nil {
		genErr = errors.New("generator returned no document")
	}
	if genErr != nil {
		return m.apply(ExtractionFailed{Err: genErr})
	}
	return m.apply(ExtractionSucceeded{Document: doc})
}

// Extract runs a full extraction with gen. The generator is called without
// holding the lock so snapshots stay available while it runs. The returned
// error is the generator's error, ErrBusy or ErrStale.
func (m *Machine) Extract(ctx context.Context, gen quizgen.Generator, req quizgen.Request) error {
	t, err := m.Begin(req)
	if err != nil {
		return err
	}

	doc, genErr := gen.Generate(ctx, req)

	if err := m.Complete(t, doc, genErr); err != nil {
		return err
	}
	return genErr
}

func (m *Machine) apply(ev Event) error {
	next, err := Reduce(m.state, ev)
	if err != nil {
		return err
	}
	m.state = next
	return nil
}
