package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	assert.Empty(t, cfg.OpenAI.APIKey, "defaults must not carry credentials")
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Empty(t, cfg.Anthropic.APIKey)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("QUIZSVC_OPENAI_MODEL", "gpt-4o")
	t.Setenv("QUIZSVC_OPENAI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("GEMINI_API_KEY", "gm-test")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := ConfigFromEnv()

	require.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "http://localhost:9999/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "gm-test", cfg.Gemini.APIKey)
	assert.Empty(t, cfg.Anthropic.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model, "unset model keeps the default")
}

func TestResolveModel(t *testing.T) {
	table := map[string]string{"friendly": "full-id-123"}

	assert.Equal(t, "full-id-123", resolveModel("friendly", table))
	assert.Equal(t, "exact-model-id", resolveModel("exact-model-id", table), "unknown names pass through")
}
