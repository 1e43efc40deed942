package llm

import (
	"context"
	"fmt"

	"github.com/socialchef/chefgpt/internal/config"
)

// KeyLookup returns the API key configured for a provider name.
type KeyLookup func(provider string) string

// NewProvider creates the configured provider, wrapped in a FallbackProvider
// when fallback is enabled.
func NewProvider(ctx context.Context, cfg config.GenerationConfig, keys KeyLookup) (Provider, error) {
	primary, err := newSingle(ctx, cfg.Provider, cfg.Model, cfg.BaseURL, keys)
	if err != nil {
		return nil, err
	}

	if !cfg.FallbackEnabled {
		return primary, nil
	}

	// Model and base URL overrides only apply to the primary provider.
	secondary, err := newSingle(ctx, cfg.FallbackProvider, "", "", keys)
	if err != nil {
		return nil, fmt.Errorf("fallback provider: %w", err)
	}
	return NewFallbackProvider(primary, secondary), nil
}

func newSingle(ctx context.Context, name, model, baseURL string, keys KeyLookup) (Provider, error) {
	key := keys(name)

	var p *ChatProvider
	switch ProviderType(name) {
	case ProviderGemini, "":
		return NewGeminiProvider(ctx, keys(string(ProviderGemini)), model)
	case ProviderGroq:
		p = NewGroqProvider(key, model)
	case ProviderCerebras:
		p = NewCerebrasProvider(key, model)
	case ProviderOpenAI:
		p = NewOpenAIProvider(key, model)
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}

	if baseURL != "" {
		p.WithBaseURL(baseURL)
	}
	return p, nil
}
