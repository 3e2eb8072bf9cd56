package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the model response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// MaxTextBytes bounds the educational text. Zero disables the check.
	MaxTextBytes int

	// Structured sends DocumentSchema to the provider so it can use its
	// native structured output mode. The response still goes through
	// Extract and Normalize.
	Structured bool
}

// DefaultConfig returns the settings the prompt was tuned with.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    4096,
		Temperature:  0.34,
		MaxTextBytes: DefaultMaxTextBytes,
	}
}
