package llm

import (
	"context"
	"fmt"

	"github.com/focusflow/focusflow/internal/store"
)

// NewProvider builds the configured provider wrapped as
// timeout → retry → logging → base. A nil eventRepo skips logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo != nil {
		base = WithLogging(base, eventRepo)
	}
	return WithTimeout(WithRetry(base, cfg.Retry), cfg.Timeout), nil
}

// NewProviderFromEnv uses FOCUSFLOW_LLM_PROVIDER when set and otherwise
// falls back to whichever vendor API key is present.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: %w", err)
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}
