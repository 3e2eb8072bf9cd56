package llm

import (
	"cmp"
	"errors"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

var groqModels = map[string]string{
	"llama-8b":  "llama-3.1-8b-instant",
	"llama-70b": "llama-3.3-70b-versatile",
}

// GroqProvider uses Groq's OpenAI-compatible endpoint. Groq does not
// enforce json_schema, so schema replies are checked locally only.
type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing Groq API key")
	}
	p := newCompatProvider(cfg.APIKey, cmp.Or(cfg.BaseURL, defaultGroqBaseURL), resolveModel(cfg.Model, groqModels), false)
	return &GroqProvider{OpenAIProvider: p}, nil
}
