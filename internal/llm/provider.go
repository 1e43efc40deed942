// Package llm talks to the external generation models. Providers take a
// rendered prompt and return the raw text of the reply; parsing and
// validating that text is the caller's job.
package llm

import (
	"context"
	"errors"
)

// ProviderType names a supported model provider.
type ProviderType string

const (
	ProviderGemini   ProviderType = "gemini"
	ProviderGroq     ProviderType = "groq"
	ProviderCerebras ProviderType = "cerebras"
	ProviderOpenAI   ProviderType = "openai"
)

// ErrNoResponse is returned when the provider answered without any content.
var ErrNoResponse = errors.New("no response from model")

// Prompt is one request to a model.
type Prompt struct {
	System string
	User   string
	// JSON asks the provider to constrain the reply to a JSON object.
	JSON bool
}

// Provider is a text generation backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
