package quizgen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/llm"
)

// Purpose is the label recorded with every generation call.
const Purpose = "quiz-extract"

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	cache    DocumentCache
	logger   *slog.Logger
}

// New creates a new LLMGenerator. A nil provider is allowed; Generate then
// fails with ErrNoProvider after validating the request.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg, logger: slog.Default()}
}

// WithCache enables document caching keyed by model and prompt.
func (g *LLMGenerator) WithCache(c DocumentCache) *LLMGenerator {
	g.cache = c
	return g
}

// WithLogger replaces the default logger.
func (g *LLMGenerator) WithLogger(l *slog.Logger) *LLMGenerator {
	g.logger = l
	return g
}

// Generate runs validate, prompt, provider, extract and normalize in order.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*knowledge.Document, error) {
	req, err := ValidateRequest(req, g.config.MaxTextBytes)
	if err != nil {
		return nil, err
	}
	if g.provider == nil {
		return nil, ErrNoProvider
	}

	prompt := CompilePrompt(req)
	key := CacheKey(g.provider.ModelID(), prompt)

	if doc := g.cached(ctx, key); doc != nil {
		return doc, nil
	}

	llmReq := llm.Request{
		System: SystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	if g.config.Structured {
		llmReq.Schema = DocumentSchema
	} else {
		llmReq.JSON = true
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, Purpose), llmReq)
	if err != nil {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			return nil, &ExtractionError{Raw: truncateRunes(string(inv.Content), MaxRawExcerpt), Err: err}
		}
		// Truncated output is reported like unparsable output.
		var maxTok *llm.ErrMaxTokensExceeded
		if errors.As(err, &maxTok) {
			return nil, &ExtractionError{Raw: truncateRunes(string(maxTok.Content), MaxRawExcerpt), Err: err}
		}
		return nil, &UpstreamError{Err: err}
	}

	v, err := Extract(string(resp.Content))
	if err != nil {
		return nil, err
	}
	doc, err := Normalize(v)
	if err != nil {
		return nil, err
	}

	g.store(ctx, key, doc)
	return doc, nil
}

func (g *LLMGenerator) cached(ctx context.Context, key string) *knowledge.Document {
	if g.cache == nil {
		return nil
	}
	b, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		g.logger.Warn("document cache read failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	doc, err := DecodeDocument(b)
	if err != nil {
		return nil
	}
	g.logger.Debug("document cache hit", "key", key)
	return doc
}

func (g *LLMGenerator) store(ctx context.Context, key string, doc *knowledge.Document) {
	if g.cache == nil {
		return
	}
	b, err := EncodeDocument(doc)
	if err != nil {
		return
	}
	if err := g.cache.Set(ctx, key, b); err != nil {
		g.logger.Warn("document cache write failed", "error", err)
	}
}

// CacheKey derives a stable key from the model and compiled prompt.
func CacheKey(model, prompt string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return "quizify:doc:" + hex.EncodeToString(h.Sum(nil))
}
