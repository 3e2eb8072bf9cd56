package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates calls and tokens for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates calls and tokens for one model ID.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// SavedDocument is an extracted knowledge document kept in history.
// Data holds the document's wire JSON.
type SavedDocument struct {
	ID         int
	Sequence   int64
	Timestamp  time.Time
	Source     string
	Difficulty string
	Concepts   int
	Questions  int
	Data       []byte
}

// DocumentRepo keeps a bounded history of extracted documents.
type DocumentRepo interface {
	// Save stores a document and fills in its ID, Sequence and Timestamp.
	Save(ctx context.Context, doc *SavedDocument) error

	// Latest returns the most recently saved document, or nil if none exist.
	Latest(ctx context.Context) (*SavedDocument, error)

	// List returns up to limit documents newest first (0 = unlimited).
	List(ctx context.Context, limit int) ([]SavedDocument, error)

	// Prune deletes all but the N most recent documents.
	Prune(ctx context.Context, keep int) error
}
