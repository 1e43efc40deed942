package api

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/socialchef/chefgpt/internal/errors"
	"github.com/socialchef/chefgpt/internal/metrics"
	"github.com/socialchef/chefgpt/internal/middleware"
	"github.com/socialchef/chefgpt/internal/schema"
	"github.com/socialchef/chefgpt/internal/session"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const (
	failureTitle       = "Oh no! Something went wrong."
	failureDescription = "Failed to generate recipe. Please try again."
	refreshSeconds     = 2
)

// FormSessions holds the per-visitor state of the recipe form.
type FormSessions = session.Store[schema.RecipeRequest, schema.RecipeResponse]

type formState = session.State[schema.RecipeRequest, schema.RecipeResponse]

type formView struct {
	Ingredients        string
	DietaryPreferences string
	Pending            bool
	RefreshSeconds     int
	Recipe             *schema.RecipeResponse
	ErrorTitle         string
	ErrorDescription   string
	FieldErrors        map[string]string
}

func newFormView(state formState) formView {
	view := formView{
		Ingredients:        state.Input.Ingredients,
		DietaryPreferences: state.Input.DietaryPreferences,
		Pending:            state.Pending,
		RefreshSeconds:     refreshSeconds,
		Recipe:             state.Last,
		FieldErrors:        map[string]string{},
	}
	if state.LastErr != nil {
		view.ErrorTitle = failureTitle
		view.ErrorDescription = failureDescription
		if appErr, ok := errors.As(state.LastErr); ok && appErr.RecoverySuggestion() != "" {
			view.ErrorDescription = appErr.RecoverySuggestion()
		}
	}
	return view
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	appErr, ok := errors.As(err)
	if !ok {
		return out
	}
	for _, v := range appErr.Violations {
		if v.Field == "ingredients" {
			out[v.Field] = "Please enter at least one ingredient."
			continue
		}
		out[v.Field] = v.Message
	}
	return out
}

func (s *Server) formSession(r *http.Request) (*session.Session[schema.RecipeRequest, schema.RecipeResponse], bool) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		return nil, false
	}
	return s.forms.Get(sessionID), true
}

// HandleForm renders the recipe form with the visitor's current state.
func (s *Server) HandleForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.formSession(r)
	if !ok {
		http.Error(w, "Missing session", http.StatusInternalServerError)
		return
	}
	s.renderForm(w, r, http.StatusOK, newFormView(sess.State()))
}

// HandleFormSubmit validates the form, starts a generation in the background
// and redirects back to the form.
func (s *Server) HandleFormSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.formSession(r)
	if !ok {
		http.Error(w, "Missing session", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	in := schema.RecipeRequest{
		Ingredients:        r.PostForm.Get("ingredients"),
		DietaryPreferences: r.PostForm.Get("dietaryPreferences"),
	}

	if _, err := schema.RecipeRequestSchema.Validate(in); err != nil {
		view := newFormView(sess.State())
		view.Ingredients = in.Ingredients
		view.DietaryPreferences = in.DietaryPreferences
		view.FieldErrors = fieldErrors(err)
		s.renderForm(w, r, http.StatusBadRequest, view)
		return
	}

	metrics.FormSubmissionsTotal.Add(r.Context(), 1)

	// The generation outlives this request; the redirected GET picks it up.
	id := sess.Start(context.WithoutCancel(r.Context()), in, nil)
	slog.DebugContext(r.Context(), "Started form generation", "request_id", id)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDismiss clears the failure notification.
func (s *Server) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.formSession(r); ok {
		sess.DismissError()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type sessionStateResponse struct {
	RequestID uint64                 `json:"requestId"`
	Pending   bool                   `json:"pending"`
	Recipe    *schema.RecipeResponse `json:"recipe,omitempty"`
	Error     *ErrorResponse         `json:"error,omitempty"`
}

// HandleSessionState returns the form state as JSON for clients that poll.
func (s *Server) HandleSessionState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.formSession(r)
	if !ok {
		http.Error(w, "Missing session", http.StatusInternalServerError)
		return
	}

	state := sess.State()
	resp := sessionStateResponse{
		RequestID: state.RequestID,
		Pending:   state.Pending,
		Recipe:    state.Last,
	}
	if state.LastErr != nil {
		errResp := toErrorResponse(state.LastErr)
		resp.Error = &errResp
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, view formView) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render form", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
