package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible APIs
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the built-in defaults. Advice requests are tiny,
// so the cheapest model of each family is preferred.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// ConfigFromEnv overlays FOCUSFLOW_* environment variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "FOCUSFLOW_LLM_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "FOCUSFLOW_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "FOCUSFLOW_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "FOCUSFLOW_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "FOCUSFLOW_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "FOCUSFLOW_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "FOCUSFLOW_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "FOCUSFLOW_GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "FOCUSFLOW_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "FOCUSFLOW_OPENROUTER_MODEL")

	if d := os.Getenv("FOCUSFLOW_LLM_TIMEOUT"); d != "" {
		if parsed, err := time.ParseDuration(d); err == nil {
			cfg.Timeout = parsed
		}
	}
	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' standard API key variables
// (Gemini, OpenAI, Anthropic, OpenRouter) and configures the first found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "FOCUSFLOW_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "FOCUSFLOW_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "FOCUSFLOW_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "FOCUSFLOW_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
