package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Provider produces one model reply per Generate call. Implementations
// validate schema replies before returning them.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	// ModelID is the vendor model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, switches the vendor into structured output and
	// the reply is validated against it. Without it Content is raw text.
	Schema *Schema

	// JSON asks for a JSON object without a schema where the vendor
	// supports it.
	JSON bool

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the prompt.
type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response is a finished reply. Content is validated JSON when the
// request carried a Schema.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // StopEnd or StopMaxTokens
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Usage counts tokens for one call. TotalTokens is derived when the vendor
// leaves it out.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

var errEmptyResponse = errors.New("empty response")

// complete turns the text of a finished call into a Response. A reply cut
// off at the token limit is an ErrMaxTokensExceeded; replies to schema
// requests are validated against req.Schema.
func complete(req Request, text string, usage Usage, model, stop string) (*Response, error) {
	content := json.RawMessage(text)
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ErrInvalidResponse{Content: content, Err: errEmptyResponse}
	}
	if err := req.Schema.Validate(content); err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
