package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/store"
)

// NewProvider builds the configured backend. Real backends are returned as
// retry(logging(backend)), so every attempt lands in the request log; the
// mock is returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventRepo, log *logger.Logger) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return WithRetry(WithLogging(backend, events, log), cfg.Retry), nil
}

func newBackend(ctx context.Context, cfg Config) (p Provider, err error) {
	switch cfg.Provider {
	case "anthropic":
		p, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		p, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", cfg.Provider, err)
	}
	return p, nil
}
