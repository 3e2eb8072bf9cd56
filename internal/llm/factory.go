package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/quizify/internal/store"
)

// ErrNotConfigured means neither QUIZIFY_LLM_PROVIDER nor any vendor API
// key is set.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProvider builds the provider named by cfg and wraps it as
// timeout(retry(logging(base))). A nil eventRepo skips call recording.
// The mock provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "mock":
		return NewDemoProvider(), nil
	case "groq":
		base, err = NewGroqProvider(cfg.Groq)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	p := base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo)
	}
	return WithTimeout(WithRetry(p, cfg.Retry), cfg.Timeout), nil
}

// NewProviderFromEnv uses ConfigFromEnv. Without QUIZIFY_LLM_PROVIDER the
// provider and key come from DiscoverConfig while model, base URL, retry
// and timeout overrides still apply.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if os.Getenv("QUIZIFY_LLM_PROVIDER") == "" {
		found, ok := DiscoverConfig()
		if !ok {
			return nil, ErrNotConfigured
		}
		cfg.Provider = found.Provider
		envs, discovered := cfg.providerEnvs(), found.providerEnvs()
		for i, e := range envs {
			if e.name == found.Provider && *e.apiKey == "" {
				*e.apiKey = *discovered[i].apiKey
			}
		}
	}
	return NewProvider(ctx, cfg, eventRepo)
}
