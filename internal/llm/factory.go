package llm

import (
	"context"
	"fmt"

	"github.com/storynest/quiz-service/internal/logger"
)

// NewChain builds the provider fallback chain from configuration.
// Providers appear in fixed priority order (OpenAI, Gemini, Anthropic)
// and a provider without a configured API key is skipped entirely. An
// empty chain is valid: generation then falls straight through to the
// static fallback content.
func NewChain(ctx context.Context, cfg Config, sink CallSink, log *logger.Logger) ([]Provider, error) {
	var chain []Provider

	if cfg.OpenAI.APIKey != "" {
		p, err := NewOpenAIProvider(cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("initializing openai provider: %w", err)
		}
		chain = append(chain, WithLogging(p, sink, log))
	}

	if cfg.Gemini.APIKey != "" {
		p, err := NewGeminiProvider(ctx, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("initializing gemini provider: %w", err)
		}
		chain = append(chain, WithLogging(p, sink, log))
	}

	if cfg.Anthropic.APIKey != "" {
		p, err := NewAnthropicProvider(cfg.Anthropic)
		if err != nil {
			return nil, fmt.Errorf("initializing anthropic provider: %w", err)
		}
		chain = append(chain, WithLogging(p, sink, log))
	}

	if len(chain) == 0 {
		log.Warn("no LLM credentials configured, quiz generation will serve fallback content only")
	}

	return chain, nil
}
