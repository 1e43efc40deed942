package llm

import (
	"context"
	"testing"

	"github.com/socialchef/chefgpt/internal/config"
)

func testKeys(provider string) string {
	return "test-" + provider + "-key"
}

func TestFactory_ChatProviders(t *testing.T) {
	testCases := []struct {
		provider string
		wantName string
	}{
		{"groq", "Groq"},
		{"cerebras", "Cerebras"},
		{"openai", "OpenAI"},
	}

	for _, tc := range testCases {
		t.Run(tc.provider, func(t *testing.T) {
			cfg := config.GenerationConfig{Provider: tc.provider}

			provider, err := NewProvider(context.Background(), cfg, testKeys)
			if err != nil {
				t.Fatalf("NewProvider() error: %v", err)
			}

			chat, ok := provider.(*ChatProvider)
			if !ok {
				t.Fatalf("Expected ChatProvider, got %T", provider)
			}
			if chat.Name() != tc.wantName {
				t.Errorf("Name() = %s, want %s", chat.Name(), tc.wantName)
			}
			if chat.apiKey != testKeys(tc.provider) {
				t.Errorf("apiKey = %s, want %s", chat.apiKey, testKeys(tc.provider))
			}
		})
	}
}

func TestFactory_Gemini(t *testing.T) {
	provider, err := NewProvider(context.Background(), config.GenerationConfig{Provider: "gemini"}, testKeys)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	gemini, ok := provider.(*GeminiProvider)
	if !ok {
		t.Fatalf("Expected GeminiProvider, got %T", provider)
	}
	defer gemini.Close()

	if gemini.Model() != defaultGeminiModel {
		t.Errorf("Model() = %s, want %s", gemini.Model(), defaultGeminiModel)
	}
}

func TestFactory_ModelAndBaseURLOverride(t *testing.T) {
	cfg := config.GenerationConfig{
		Provider: "openai",
		Model:    "llama3",
		BaseURL:  "http://localhost:11434/v1/",
	}

	provider, err := NewProvider(context.Background(), cfg, testKeys)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	chat := provider.(*ChatProvider)
	if chat.Model() != "llama3" {
		t.Errorf("Model() = %s, want llama3", chat.Model())
	}
	if chat.baseURL != "http://localhost:11434/v1" {
		t.Errorf("baseURL = %s", chat.baseURL)
	}
}

func TestFactory_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), config.GenerationConfig{Provider: "mystery"}, testKeys)
	if err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestFactory_WithFallback(t *testing.T) {
	cfg := config.GenerationConfig{
		Provider:         "groq",
		FallbackEnabled:  true,
		FallbackProvider: "cerebras",
	}

	provider, err := NewProvider(context.Background(), cfg, testKeys)
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}

	fallbackProvider, ok := provider.(*FallbackProvider)
	if !ok {
		t.Fatalf("Expected FallbackProvider, got %T", provider)
	}

	if fallbackProvider.Primary.Name() != "Groq" {
		t.Errorf("Expected primary to be Groq, got %s", fallbackProvider.Primary.Name())
	}
	if fallbackProvider.Secondary.Name() != "Cerebras" {
		t.Errorf("Expected secondary to be Cerebras, got %s", fallbackProvider.Secondary.Name())
	}
}
