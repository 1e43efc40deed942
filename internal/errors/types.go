package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "VALIDATION_ERROR"
	ErrorTypeRecipeGeneration ErrorType = "RECIPE_GENERATION_ERROR"
	ErrorTypeNotFound         ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeInternal         ErrorType = "INTERNAL_ERROR"
)

// Violation describes one field that failed a schema constraint.
type Violation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// AppError represents a structured error for the application
type AppError struct {
	Type          ErrorType   `json:"type"`
	Message       string      `json:"message"`
	StatusCode    int         `json:"statusCode"`
	ErrorCode     string      `json:"errorCode"`
	IsOperational bool        `json:"isOperational"`
	Recovery      string      `json:"recoverySuggestion,omitempty"`
	Violations    []Violation `json:"violations,omitempty"`
	Retryable     bool        `json:"retryable"`
	Err           error       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if len(e.Violations) > 0 && !causeListsViolations(e.Err) {
		parts := make([]string, len(e.Violations))
		for i, v := range e.Violations {
			parts[i] = v.String()
		}
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(parts, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// causeListsViolations reports whether err's own message already prints
// the violations.
func causeListsViolations(err error) bool {
	var cause *AppError
	return stderrors.As(err, &cause) && len(cause.Violations) > 0
}

// IsRetryable reports whether a new attempt at the same generation could
// succeed. Only generation errors marked retryable qualify.
func (e *AppError) IsRetryable() bool {
	return e.Type == ErrorTypeRecipeGeneration && e.Retryable
}

// WithRetryable sets the retryable flag and returns e.
func (e *AppError) WithRetryable(retryable bool) *AppError {
	e.Retryable = retryable
	return e
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewSchemaValidationError creates a validation error (400) listing every
// field that violated its schema.
func NewSchemaValidationError(schema string, violations []Violation) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       fmt.Sprintf("%s failed validation", schema),
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     "SCHEMA_VALIDATION_FAILED",
		IsOperational: true,
		Recovery:      "Fill in the required fields and submit again.",
		Violations:    violations,
	}
}

// NewNotFoundError creates a new not found error (404)
func NewNotFoundError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeNotFound,
		Message:       message,
		StatusCode:    http.StatusNotFound,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewRecipeGenerationError creates a new recipe generation error (502).
// It is the error every failed model round trip surfaces as.
func NewRecipeGenerationError(message string, errorCode string, err error) *AppError {
	appErr := &AppError{
		Type:          ErrorTypeRecipeGeneration,
		Message:       message,
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Failed to generate recipe. Please try again.",
		Err:           err,
	}
	var cause *AppError
	if stderrors.As(err, &cause) && cause.Type == ErrorTypeValidation {
		appErr.Violations = cause.Violations
	}
	return appErr
}

// NewInternalError creates a new internal error (500)
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeInternal,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     "INTERNAL_ERROR",
		IsOperational: false,
		Err:           err,
	}
}

// As returns the outermost AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsValidation reports whether err is a validation failure on caller input.
func IsValidation(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == ErrorTypeValidation
}

// IsGeneration reports whether err is a failed generation round trip.
func IsGeneration(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == ErrorTypeRecipeGeneration
}
