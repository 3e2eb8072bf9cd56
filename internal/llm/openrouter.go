package llm

import (
	"cmp"
	"errors"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible
// endpoint. Model IDs are vendor-prefixed ("meta-llama/...") and sent as
// configured; schemas are sent in strict mode.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing OpenRouter API key")
	}
	p := newCompatProvider(cfg.APIKey, cmp.Or(cfg.BaseURL, defaultOpenRouterBaseURL), cfg.Model, true)
	return &OpenRouterProvider{OpenAIProvider: p}, nil
}
