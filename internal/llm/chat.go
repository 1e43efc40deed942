package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/socialchef/chefgpt/internal/httpclient"
	"github.com/socialchef/chefgpt/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	groqBaseURL     = "https://api.groq.com/openai/v1"
	cerebrasBaseURL = "https://api.cerebras.ai/v1"
	openAIBaseURL   = "https://api.openai.com/v1"

	defaultGroqModel     = "llama-3.3-70b-versatile"
	defaultCerebrasModel = "gpt-oss-120b"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// APIError is a non-2xx reply from a chat completions endpoint.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// ChatProvider implements Provider for OpenAI-compatible chat completions
// APIs (Groq, Cerebras, OpenAI).
type ChatProvider struct {
	name    string
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewChatProvider creates a provider for any OpenAI-compatible endpoint.
func NewChatProvider(name, baseURL, apiKey, model string) *ChatProvider {
	return &ChatProvider{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  httpclient.InstrumentedClient,
	}
}

func NewGroqProvider(apiKey, model string) *ChatProvider {
	return NewChatProvider("Groq", groqBaseURL, apiKey, orDefault(model, defaultGroqModel))
}

func NewCerebrasProvider(apiKey, model string) *ChatProvider {
	return NewChatProvider("Cerebras", cerebrasBaseURL, apiKey, orDefault(model, defaultCerebrasModel))
}

func NewOpenAIProvider(apiKey, model string) *ChatProvider {
	return NewChatProvider("OpenAI", openAIBaseURL, apiKey, orDefault(model, defaultOpenAIModel))
}

// WithBaseURL points the provider at another endpoint, e.g. a proxy.
func (p *ChatProvider) WithBaseURL(baseURL string) *ChatProvider {
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

// WithHTTPClient replaces the instrumented default client.
func (p *ChatProvider) WithHTTPClient(client *http.Client) *ChatProvider {
	p.client = client
	return p
}

func (p *ChatProvider) Name() string  { return p.name }
func (p *ChatProvider) Model() string { return p.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request and returns the reply content.
func (p *ChatProvider) Complete(ctx context.Context, prompt Prompt) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", strings.ToLower(p.name))}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	req := chatRequest{Model: p.model}
	if prompt.System != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: prompt.System})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: prompt.User})
	if prompt.JSON {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal %s request: %w", p.name, err)
	}

	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, p.name), http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", p.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", p.name, err)
	}

	if resp.StatusCode >= 400 {
		return "", &APIError{Provider: p.name, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode %s response: %w", p.name, err)
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%s: %w", p.name, ErrNoResponse)
	}

	return chatResp.Choices[0].Message.Content, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
