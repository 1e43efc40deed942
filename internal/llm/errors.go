package llm

import (
	stderrors "errors"
	"strings"

	"github.com/socialchef/chefgpt/internal/errors"
	"google.golang.org/api/googleapi"
)

// Error classifications.
const (
	ErrorTypeRateLimit       = "rate_limit"
	ErrorTypeCreditExhausted = "credit_exhausted"
	ErrorTypeServerError     = "server_error"
	ErrorTypeClientError     = "client_error"
	ErrorTypeUnknown         = "unknown"
)

// ProviderError represents a classified error from a model provider
type ProviderError struct {
	Type     string
	Message  string
	Provider string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

// ClassifyError analyzes an error and returns a ProviderError with classification
func ClassifyError(err error, provider string) *ProviderError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	classified := func(kind string) *ProviderError {
		return &ProviderError{Type: kind, Message: msg, Provider: provider}
	}

	if code := statusCode(err); code != 0 {
		return classified(classifyStatus(code))
	}

	// Check for rate limit (429)
	if containsAny(msg, "status 429", "http 429", "error 429", "rate limit", "too many requests", "resource exhausted", "resource_exhausted") {
		return classified(ErrorTypeRateLimit)
	}

	// Check for credit exhaustion (402 or credit-related messages)
	if containsAny(msg, "status 402", "http 402", "insufficient credit", "credit exhausted", "billing", "quota exceeded") {
		return classified(ErrorTypeCreditExhausted)
	}

	// Check for AppError with status code
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		if appErr.StatusCode >= 500 {
			return classified(ErrorTypeServerError)
		}
		if appErr.StatusCode >= 400 {
			return classified(ErrorTypeClientError)
		}
	}

	// Check for server errors (5xx) in message
	if containsAny(msg, "status 5", "http 5", "error 5", "server error", "internal error", "unavailable") {
		return classified(ErrorTypeServerError)
	}

	// Check for client errors (4xx) in message
	if containsAny(msg, "status 4", "http 4", "error 4", "bad request", "unauthorized", "forbidden", "permission denied", "api key not valid") {
		return classified(ErrorTypeClientError)
	}

	return classified(ErrorTypeUnknown)
}

// IsRetryableError returns true if the error is retryable (rate limit, credit exhausted, or server error)
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	providerErr := ClassifyError(err, "")
	if providerErr == nil {
		return false
	}

	switch providerErr.Type {
	case ErrorTypeRateLimit, ErrorTypeCreditExhausted, ErrorTypeServerError:
		return true
	default:
		return false
	}
}

func statusCode(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var gErr *googleapi.Error
	if stderrors.As(err, &gErr) {
		return gErr.Code
	}
	return 0
}

func classifyStatus(code int) string {
	switch {
	case code == 429:
		return ErrorTypeRateLimit
	case code == 402:
		return ErrorTypeCreditExhausted
	case code >= 500:
		return ErrorTypeServerError
	case code >= 400:
		return ErrorTypeClientError
	default:
		return ErrorTypeUnknown
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive)
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
