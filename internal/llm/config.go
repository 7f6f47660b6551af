package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single generation call, including retries.
	// Lessons are long, so the default is generous: 90s.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig also serves OpenAI-compatible endpoints through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.

	// Headers are added to every request.
	Headers map[string]string
}

type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
	SiteURL string // Sent as HTTP-Referer for OpenRouter app attribution.
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses Anthropic's haiku with three attempts per call.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// ConfigFromEnv overlays LECTERN_* environment variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, dst := range map[string]*string{
		"LECTERN_LLM_PROVIDER":        &cfg.Provider,
		"LECTERN_ANTHROPIC_API_KEY":   &cfg.Anthropic.APIKey,
		"LECTERN_ANTHROPIC_MODEL":     &cfg.Anthropic.Model,
		"LECTERN_OPENAI_API_KEY":      &cfg.OpenAI.APIKey,
		"LECTERN_OPENAI_MODEL":        &cfg.OpenAI.Model,
		"LECTERN_OPENAI_BASE_URL":     &cfg.OpenAI.BaseURL,
		"LECTERN_GEMINI_API_KEY":      &cfg.Gemini.APIKey,
		"LECTERN_GEMINI_MODEL":        &cfg.Gemini.Model,
		"LECTERN_OPENROUTER_API_KEY":  &cfg.OpenRouter.APIKey,
		"LECTERN_OPENROUTER_MODEL":    &cfg.OpenRouter.Model,
		"LECTERN_OPENROUTER_SITE_URL": &cfg.OpenRouter.SiteURL,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	if d, err := time.ParseDuration(os.Getenv("LECTERN_LLM_TIMEOUT")); err == nil {
		cfg.Timeout = d
	}
	return cfg
}

// DiscoverConfig picks the first provider whose conventional API key
// variable is set, checking Gemini, OpenAI, Anthropic, then OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, c := range []struct {
		env, provider string
		key           *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	} {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	keys := map[string]string{
		"anthropic":  c.Anthropic.APIKey,
		"openai":     c.OpenAI.APIKey,
		"gemini":     c.Gemini.APIKey,
		"openrouter": c.OpenRouter.APIKey,
	}
	if c.Provider == "mock" {
		return nil
	}
	key, known := keys[c.Provider]
	if !known {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("LECTERN_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

// ResolveConfig picks the provider configuration for this process.
// LECTERN_LLM_PROVIDER selects a provider explicitly; without it the
// standard API key variables are probed via DiscoverConfig.
func ResolveConfig() (Config, error) {
	if os.Getenv("LECTERN_LLM_PROVIDER") != "" {
		cfg := ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if cfg, ok := DiscoverConfig(); ok {
		return cfg, nil
	}
	return Config{}, fmt.Errorf("no LLM provider configured: set LECTERN_LLM_PROVIDER or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")
}
