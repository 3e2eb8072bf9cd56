package quizgen

import (
	"context"

	"github.com/abhisek/quizify/internal/knowledge"
)

// Generator turns educational text into a normalized Document.
type Generator interface {
	// Generate validates req, calls the generation service once and
	// normalizes the result. It never retries on its own.
	Generate(ctx context.Context, req Request) (*knowledge.Document, error)
}

// DocumentCache stores encoded documents by key. Implementations must be
// safe for concurrent use. A miss is reported as (nil, false, nil).
type DocumentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
