package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/quizify/internal/llm"
)

func TestGenerate_Photosynthesis(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("```json\n" + photosynthesisJSON + "\n```"),
	})
	gen := New(mock, DefaultConfig())

	doc, err := gen.Generate(context.Background(), Request{
		Text:       "Photosynthesis is how plants turn light into sugar.",
		Difficulty: LevelMixed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Quiz) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(doc.Quiz))
	}

	call := mock.Calls[0]
	if call.System != SystemPrompt {
		t.Errorf("unexpected system prompt: %q", call.System)
	}
	if call.MaxTokens != 4096 {
		t.Errorf("expected 4096 max tokens, got %d", call.MaxTokens)
	}
	if call.Temperature != 0.34 {
		t.Errorf("expected temperature 0.34, got %v", call.Temperature)
	}
	if call.Schema != nil {
		t.Error("schema should only be sent in structured mode")
	}
	if !call.JSON {
		t.Error("expected bare JSON mode when structured output is off")
	}
	if !strings.HasSuffix(call.Messages[0].Content, "DIFFICULTY: mixed") {
		t.Errorf("user message should end with difficulty, got %q", call.Messages[0].Content)
	}
}

func TestGenerate_ValidationBeforeProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{Text: "   ", Difficulty: LevelEasy})
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("provider must not be called, got %d calls", mock.CallCount())
	}
}

func TestGenerate_CanonicalDifficultyInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(photosynthesisJSON)})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), Request{Text: "text", Difficulty: " EASY "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mock.Calls[0].Messages[0].Content; !strings.HasSuffix(got, "DIFFICULTY: easy") {
		t.Errorf("user message should carry the canonical level, got %q", got)
	}
}

func TestGenerate_NoProvider(t *testing.T) {
	gen := New(nil, DefaultConfig())
	_, err := gen.Generate(context.Background(), Request{Text: "text", Difficulty: LevelEasy})
	if !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("503 overloaded")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{Text: "text", Difficulty: LevelEasy})
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !strings.Contains(ue.Details(), "503 overloaded") {
		t.Errorf("details should carry upstream text, got %q", ue.Details())
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly one call, got %d", mock.CallCount())
	}
}

func TestGenerate_InvalidStructuredResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Content: json.RawMessage("not json"), Err: errors.New("bad")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{Text: "text", Difficulty: LevelEasy})
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if ee.Raw != "not json" {
		t.Errorf("raw = %q", ee.Raw)
	}
}

func TestGenerate_TruncatedOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrMaxTokensExceeded{Content: json.RawMessage(`{"concepts":[{"name":"Chloro`)},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{Text: "text", Difficulty: LevelEasy})
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if ee.Raw != `{"concepts":[{"name":"Chloro` {
		t.Errorf("raw = %q", ee.Raw)
	}
	if IsUpstream(err) {
		t.Error("truncation is not an upstream failure")
	}
}

func TestGenerate_DemoProvider(t *testing.T) {
	gen := New(llm.NewDemoProvider(), DefaultConfig())

	doc, err := gen.Generate(context.Background(), Request{
		Text: "Mitochondria produce most of the cell's energy. Ribosomes assemble proteins from amino acids. " +
			"Lysosomes break down worn out cell parts.",
		Difficulty: LevelMedium,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Concepts) != 3 || len(doc.Quiz) != 3 {
		t.Fatalf("expected 3 concepts and 3 questions, got %d and %d", len(doc.Concepts), len(doc.Quiz))
	}
	if doc.Quiz[1].RelatedConcepts[0] != "Ribosomes" {
		t.Errorf("question 2 related = %v", doc.Quiz[1].RelatedConcepts)
	}
}

func TestGenerate_UnparsableOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("Sorry, I cannot help.")})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{Text: "text", Difficulty: LevelEasy})
	if !IsExtraction(err) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestGenerate_SchemaMismatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"quiz":[{"question":"q"}]}`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Request{Text: "text", Difficulty: LevelEasy})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Field != "quiz[0].options" {
		t.Errorf("field = %q", se.Field)
	}
}

func TestGenerate_StructuredSendsSchema(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(photosynthesisJSON)})
	cfg := DefaultConfig()
	cfg.Structured = true
	gen := New(mock, cfg)

	if _, err := gen.Generate(context.Background(), Request{Text: "text", Difficulty: LevelHard}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].Schema != DocumentSchema {
		t.Fatal("expected DocumentSchema on request")
	}
	if mock.Calls[0].JSON {
		t.Error("bare JSON mode should be off when a schema is sent")
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func TestGenerate_CacheHitSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(photosynthesisJSON)})
	cache := &memCache{data: map[string][]byte{}}
	gen := New(mock, DefaultConfig()).WithCache(cache)

	req := Request{Text: "Photosynthesis", Difficulty: LevelMixed}
	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 provider call, got %d", mock.CallCount())
	}
	if len(second.Quiz) != len(first.Quiz) || second.Quiz[2].CorrectOption != first.Quiz[2].CorrectOption {
		t.Fatal("cached document differs from generated document")
	}
}

func TestCacheKey_VariesByModel(t *testing.T) {
	if CacheKey("a", "p") == CacheKey("b", "p") {
		t.Fatal("expected different keys for different models")
	}
	if CacheKey("a", "p") != CacheKey("a", "p") {
		t.Fatal("expected stable key")
	}
}
