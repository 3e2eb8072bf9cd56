package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var providerEnvVars = []string{
	"QUIZIFY_LLM_PROVIDER", "QUIZIFY_LLM_MAX_ATTEMPTS", "QUIZIFY_LLM_TIMEOUT",
	"QUIZIFY_GROQ_API_KEY", "QUIZIFY_GROQ_MODEL", "QUIZIFY_GROQ_BASE_URL",
	"QUIZIFY_OPENAI_API_KEY", "QUIZIFY_OPENAI_MODEL", "QUIZIFY_OPENAI_BASE_URL",
	"QUIZIFY_OPENROUTER_API_KEY", "QUIZIFY_OPENROUTER_MODEL", "QUIZIFY_OPENROUTER_BASE_URL",
	"QUIZIFY_ANTHROPIC_API_KEY", "QUIZIFY_ANTHROPIC_MODEL",
	"QUIZIFY_GEMINI_API_KEY", "QUIZIFY_GEMINI_MODEL",
	"GROQ_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
}

// clearProviderEnv blanks every variable the config readers look at.
func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range providerEnvVars {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Groq.Model)
	assert.Equal(t, 1, cfg.Retry.MaxAttempts, "no retries by default")
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("QUIZIFY_LLM_PROVIDER", "openrouter")
	t.Setenv("QUIZIFY_OPENROUTER_API_KEY", "or-key")
	t.Setenv("QUIZIFY_OPENROUTER_MODEL", "mistralai/mistral-7b-instruct")
	t.Setenv("QUIZIFY_LLM_MAX_ATTEMPTS", "3")
	t.Setenv("QUIZIFY_LLM_TIMEOUT", "15s")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openrouter", cfg.Provider)
	assert.Equal(t, "or-key", cfg.OpenRouter.APIKey)
	assert.Equal(t, "mistralai/mistral-7b-instruct", cfg.OpenRouter.Model)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_IgnoresBadNumbers(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("QUIZIFY_LLM_MAX_ATTEMPTS", "zero")
	t.Setenv("QUIZIFY_LLM_TIMEOUT", "-5s")

	cfg := ConfigFromEnv()
	assert.Equal(t, 1, cfg.Retry.MaxAttempts)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestDiscoverConfig_Priority(t *testing.T) {
	clearProviderEnv(t)

	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("OPENROUTER_API_KEY", "or")
	t.Setenv("OPENAI_API_KEY", "oa")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "oa", cfg.OpenAI.APIKey)

	t.Setenv("GROQ_API_KEY", "gsk")
	cfg, ok = DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "gsk", cfg.Groq.APIKey)
}

func TestNewProviderFromEnv_NotConfigured(t *testing.T) {
	clearProviderEnv(t)

	_, err := NewProviderFromEnv(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestNewProviderFromEnv_ExplicitProvider(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("QUIZIFY_LLM_PROVIDER", "mock")

	p, err := NewProviderFromEnv(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestNewProviderFromEnv_DiscoveredKeyKeepsModelOverride(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("QUIZIFY_GROQ_MODEL", "llama-70b")

	p, err := NewProviderFromEnv(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", p.ModelID())
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "groq"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUIZIFY_GROQ_API_KEY")
}
