package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/socialchef/chefgpt/internal/config"
	"github.com/socialchef/chefgpt/internal/errors"
	"github.com/socialchef/chefgpt/internal/gateway"
)

const maxBodyBytes = 1 << 20

type Server struct {
	cfg     *config.Config
	gateway *gateway.Gateway
	forms   *FormSessions
}

func NewServer(cfg *config.Config, gw *gateway.Gateway, forms *FormSessions) *Server {
	return &Server{
		cfg:     cfg,
		gateway: gw,
		forms:   forms,
	}
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Type               string             `json:"type"`
	Message            string             `json:"message"`
	ErrorCode          string             `json:"errorCode"`
	RecoverySuggestion string             `json:"recoverySuggestion,omitempty"`
	Violations         []errors.Violation `json:"violations,omitempty"`
	Retryable          bool               `json:"retryable"`
}

func toErrorResponse(err error) ErrorResponse {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError("unexpected error", err)
	}
	return ErrorResponse{
		Type:               string(appErr.Type),
		Message:            appErr.Message,
		ErrorCode:          appErr.Code(),
		RecoverySuggestion: appErr.RecoverySuggestion(),
		Violations:         appErr.Violations,
		Retryable:          appErr.IsRetryable(),
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if appErr, ok := errors.As(err); ok {
		status = appErr.StatusCode
	}
	if status >= 500 {
		slog.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "status", status, "error", err.Error())
	}
	writeJSON(w, status, toErrorResponse(err))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// capabilityHandler decodes the JSON body into In, runs generate and writes
// the typed result.
func capabilityHandler[In, Out any](generate func(context.Context, In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			writeError(w, r, errors.NewValidationError(
				"Invalid request body",
				"INVALID_REQUEST_BODY",
				"Send a JSON object with the documented fields.",
			))
			return
		}

		out, err := generate(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) HandleGenerateRecipe(w http.ResponseWriter, r *http.Request) {
	capabilityHandler(s.gateway.GenerateRecipe)(w, r)
}

func (s *Server) HandleSuggestModifications(w http.ResponseWriter, r *http.Request) {
	capabilityHandler(s.gateway.SuggestRecipeModifications)(w, r)
}

func (s *Server) HandleSuggestName(w http.ResponseWriter, r *http.Request) {
	capabilityHandler(s.gateway.SuggestRecipeName)(w, r)
}

func (s *Server) HandleSuggestRecipes(w http.ResponseWriter, r *http.Request) {
	capabilityHandler(s.gateway.SuggestRecipes)(w, r)
}

func (s *Server) HandleRecipeDetails(w http.ResponseWriter, r *http.Request) {
	capabilityHandler(s.gateway.GenerateRecipeDetails)(w, r)
}

// HandleNotFound answers unknown routes with a JSON ErrorResponse.
func (s *Server) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errors.NewNotFoundError(
		"No route for "+r.URL.Path,
		"ROUTE_NOT_FOUND",
		"Use one of /api/recipes/generate, /modify, /name, /suggest or /details.",
	))
}

// HandleMethodNotAllowed answers known routes called with the wrong method.
func (s *Server) HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	appErr := errors.NewNotFoundError(
		r.Method+" is not supported on "+r.URL.Path,
		"METHOD_NOT_ALLOWED",
		"Capability endpoints only accept POST with a JSON body.",
	)
	appErr.StatusCode = http.StatusMethodNotAllowed
	writeError(w, r, appErr)
}

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Provider: s.gateway.Provider().Name()})
}
