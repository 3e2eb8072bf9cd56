package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one queued reply. A non-nil Err is returned instead of
// Content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests and offline use.
// Queued responses are returned in FIFO order; once the queue is empty
// Fallback answers, if set. Every request is recorded in Calls.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	Calls []Request

	Fallback func(Request) (*Response, error)
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// Generate returns the next queued response. With an empty queue it calls
// Fallback, or fails with ErrProviderUnavailable when there is none.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.queue) == 0 {
		fallback := m.Fallback
		m.mu.Unlock()
		if fallback == nil {
			return nil, &ErrProviderUnavailable{}
		}
		return fallback(req)
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	m.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount returns the number of Generate calls so far, including those
// answered by Fallback.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
