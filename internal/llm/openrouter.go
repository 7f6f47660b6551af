package llm

import "errors"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterAppName        = "lectern"
)

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible API.
// Model ids are vendor-prefixed ("anthropic/claude-3-haiku") and passed
// through unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider for OpenRouter. Requests carry
// the X-Title attribution header, plus HTTP-Referer when SiteURL is set.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}

	headers := map[string]string{"X-Title": openRouterAppName}
	if cfg.SiteURL != "" {
		headers["HTTP-Referer"] = cfg.SiteURL
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Headers: headers,
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
