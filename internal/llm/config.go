package llm

import (
	"os"
	"time"
)

// Config holds credentials and model selection for every provider the
// fallback chain can use. Providers without an API key are simply left out
// of the chain; the static fallback never needs configuration.
type Config struct {
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Anthropic AnthropicConfig

	// Timeout is the maximum duration for a single provider request.
	// Default: 30s.
	Timeout time.Duration
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for OpenAI-compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-2.0-flash"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// DefaultConfig returns a Config with default models and no credentials.
func DefaultConfig() Config {
	return Config{
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-2.0-flash"},
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		Timeout:   30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("QUIZSVC_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("QUIZSVC_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("QUIZSVC_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("QUIZSVC_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	return cfg
}

// resolveModel maps a friendly model name through the given table,
// passing unknown names straight through so exact IDs keep working.
func resolveModel(name string, table map[string]string) string {
	if id, ok := table[name]; ok {
		return id
	}
	return name
}
