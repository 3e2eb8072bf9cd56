package api

import (
	"context"
	"sync"

	"github.com/abhisek/quizify/internal/session"
	"github.com/google/uuid"
)

// liveSession is one study session held by the registry. ctx lives as
// long as the session and parents its extractions.
type liveSession struct {
	id      string
	machine *session.Machine
	ctx     context.Context
	cancel  context.CancelFunc
}

// Registry holds in-memory sessions by ID. Sessions are not persisted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*liveSession)}
}

// Create starts a new session and returns it.
func (r *Registry) Create() *liveSession {
	ctx, cancel := context.WithCancel(context.Background())
	ls := &liveSession{
		id:      uuid.NewString(),
		machine: session.NewMachine(),
		ctx:     ctx,
		cancel:  cancel,
	}

	r.mu.Lock()
	r.sessions[ls.id] = ls
	r.mu.Unlock()
	return ls
}

// Get returns the session with id, or nil.
func (r *Registry) Get(id string) *liveSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Delete removes a session and cancels its in-flight extraction. It
// reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	ls, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		// Reset first so a generator unblocked by cancel sees a stale ticket.
		ls.machine.Dispatch(session.Reset{})
		ls.cancel()
	}
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close cancels every session's context.
func (r *Registry) Close() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ls := range r.sessions {
		ls.cancel()
	}
}
