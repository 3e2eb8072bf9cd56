package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config selects a generation provider and carries the settings of every
// supported one.
type Config struct {
	// Provider is one of groq, openai, openrouter, anthropic, gemini or mock.
	Provider string

	Groq       GroqConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including its retries.
	Timeout time.Duration
}

// GroqConfig is read from QUIZIFY_GROQ_*.
type GroqConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// AnthropicConfig is read from QUIZIFY_ANTHROPIC_*.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig is read from QUIZIFY_OPENAI_*. BaseURL points it at any
// compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig is read from QUIZIFY_GEMINI_*.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig is read from QUIZIFY_OPENROUTER_*.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig shapes the backoff of WithRetry. MaxAttempts of 1 disables
// retrying.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses Groq with one attempt and a 90s budget.
func DefaultConfig() Config {
	return Config{
		Provider:   "groq",
		Groq:       GroqConfig{Model: "llama-3.1-8b-instant"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "meta-llama/llama-3.1-8b-instruct"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Retry:      RetryConfig{MaxAttempts: 1, InitialWait: time.Second, MaxWait: 10 * time.Second, Multiplier: 2},
		Timeout:    90 * time.Second,
	}
}

// providerEnv binds one provider's settings to its environment variables.
// Entries are listed in discovery priority.
type providerEnv struct {
	name    string
	apiKey  *string
	model   *string
	baseURL *string
}

func (c *Config) providerEnvs() []providerEnv {
	return []providerEnv{
		{"groq", &c.Groq.APIKey, &c.Groq.Model, &c.Groq.BaseURL},
		{"gemini", &c.Gemini.APIKey, &c.Gemini.Model, nil},
		{"openai", &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL},
		{"anthropic", &c.Anthropic.APIKey, &c.Anthropic.Model, nil},
		{"openrouter", &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL},
	}
}

func (e providerEnv) prefix() string {
	return "QUIZIFY_" + strings.ToUpper(e.name) + "_"
}

// ConfigFromEnv reads QUIZIFY_* variables over DefaultConfig. Malformed
// numbers and durations are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv("QUIZIFY_LLM_PROVIDER", &cfg.Provider)

	for _, e := range cfg.providerEnvs() {
		setFromEnv(e.prefix()+"API_KEY", e.apiKey)
		setFromEnv(e.prefix()+"MODEL", e.model)
		if e.baseURL != nil {
			setFromEnv(e.prefix()+"BASE_URL", e.baseURL)
		}
	}

	if n, err := strconv.Atoi(os.Getenv("QUIZIFY_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("QUIZIFY_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

func setFromEnv(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first provider whose vendor key (GROQ_API_KEY,
// GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)
// is set, in that order.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, e := range cfg.providerEnvs() {
		if k := os.Getenv(strings.ToUpper(e.name) + "_API_KEY"); k != "" {
			cfg.Provider = e.name
			*e.apiKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	for _, e := range c.providerEnvs() {
		if e.name != c.Provider {
			continue
		}
		if *e.apiKey == "" {
			return fmt.Errorf("%sAPI_KEY is required for the %s provider", e.prefix(), e.name)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}

// resolveModel maps a short alias to the vendor model ID. Unknown names
// are taken as IDs.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
