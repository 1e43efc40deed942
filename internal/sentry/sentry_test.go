package sentry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
)

func TestInit_EmptyDSN(t *testing.T) {
	if err := Init("", "test", "chefgpt", "1.0.0"); err != nil {
		t.Fatalf("expected no error for empty DSN, got %v", err)
	}
}

func TestCaptureError_WithoutInit(t *testing.T) {
	// Must not panic when Sentry is not configured.
	CaptureError(context.Background(), errors.New("boom"), map[string]string{"capability": "generate-recipe"})
	CaptureError(context.Background(), nil, nil)
}

func TestHTTPMiddleware_SetsHub(t *testing.T) {
	var hub *sentry.Hub
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub = sentry.GetHubFromContext(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if hub == nil {
		t.Error("expected a Sentry hub in the request context")
	}
	if rr.Code != http.StatusAccepted {
		t.Errorf("expected status %d, got %d", http.StatusAccepted, rr.Code)
	}
}

func TestHTTPMiddleware_RecoversPanic(t *testing.T) {
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}
