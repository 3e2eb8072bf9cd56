// Package config loads application configuration from environment variables.
// All variables use the QUIZIFY_ prefix. Provider credentials are read by
// the llm package.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/quizify/internal/quizgen"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Cache      CacheConfig
	Generation GenerationConfig
	Log        LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig holds the audit log database settings. An empty Path
// means the default location.
type DatabaseConfig struct {
	Path string
}

// CacheConfig holds Redis connection settings. An empty URL disables
// document caching.
type CacheConfig struct {
	URL string
	TTL time.Duration
}

// GenerationConfig bounds a single extraction.
type GenerationConfig struct {
	Timeout      time.Duration
	MaxTextBytes int
	Structured   bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with QUIZIFY_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr: envStr("QUIZIFY_ADDR", ":8080"),
		},
		Database: DatabaseConfig{
			Path: envStr("QUIZIFY_DB", ""),
		},
		Cache: CacheConfig{
			URL: envStr("QUIZIFY_CACHE_URL", ""),
			TTL: envDuration("QUIZIFY_CACHE_TTL", 24*time.Hour),
		},
		Generation: GenerationConfig{
			Timeout:      envDuration("QUIZIFY_GENERATION_TIMEOUT", 2*time.Minute),
			MaxTextBytes: envInt("QUIZIFY_MAX_TEXT_BYTES", quizgen.DefaultMaxTextBytes),
			Structured:   envBool("QUIZIFY_LLM_STRUCTURED", false),
		},
		Log: LogConfig{
			Level:  envStr("QUIZIFY_LOG_LEVEL", "info"),
			Format: envStr("QUIZIFY_LOG_FORMAT", "json"),
		},
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("QUIZIFY_ADDR must not be empty")
	}
	if c.Generation.Timeout <= 0 {
		return fmt.Errorf("QUIZIFY_GENERATION_TIMEOUT must be positive, got %s", c.Generation.Timeout)
	}
	if c.Generation.MaxTextBytes <= 0 {
		return fmt.Errorf("QUIZIFY_MAX_TEXT_BYTES must be positive, got %d", c.Generation.MaxTextBytes)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("QUIZIFY_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}
	return nil
}

// GeneratorConfig returns the quizgen settings derived from c.
func (c *Config) GeneratorConfig() quizgen.Config {
	gc := quizgen.DefaultConfig()
	gc.MaxTextBytes = c.Generation.MaxTextBytes
	gc.Structured = c.Generation.Structured
	return gc
}

// NewLogger builds a slog.Logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("QUIZIFY_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
