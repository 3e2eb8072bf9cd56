package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/store"
)

// EncodeDocument serializes doc in the wire shape.
func EncodeDocument(doc *knowledge.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	return json.Marshal(doc.ToWire())
}

// DecodeDocument parses wire JSON and normalizes it again.
func DecodeDocument(b []byte) (*knowledge.Document, error) {
	v, err := Extract(string(b))
	if err != nil {
		return nil, err
	}
	return Normalize(v)
}

// SaveDocument records doc in the history and trims it to keep entries.
func SaveDocument(ctx context.Context, repo store.DocumentRepo, source string, level Level, doc *knowledge.Document, keep int) (*store.SavedDocument, error) {
	data, err := EncodeDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	saved := &store.SavedDocument{
		Source:     source,
		Difficulty: string(level),
		Concepts:   len(doc.Concepts),
		Questions:  len(doc.Quiz),
		Data:       data,
	}
	if err := repo.Save(ctx, saved); err != nil {
		return nil, err
	}
	if keep > 0 {
		if err := repo.Prune(ctx, keep); err != nil {
			return saved, fmt.Errorf("prune history: %w", err)
		}
	}
	return saved, nil
}

// LoadDocument decodes a saved history entry.
func LoadDocument(saved *store.SavedDocument) (*knowledge.Document, error) {
	if saved == nil {
		return nil, errors.New("nil saved document")
	}
	doc, err := DecodeDocument(saved.Data)
	if err != nil {
		return nil, fmt.Errorf("decode saved document %d: %w", saved.ID, err)
	}
	return doc, nil
}

// StaticGenerator replays a document that was generated earlier. It skips
// request validation since no text is sent anywhere.
type StaticGenerator struct {
	Document *knowledge.Document
}

// Generate returns a copy of the stored document.
func (g StaticGenerator) Generate(ctx context.Context, _ Request) (*knowledge.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.Document == nil {
		return nil, errors.New("no saved document")
	}
	return g.Document.Clone(), nil
}
