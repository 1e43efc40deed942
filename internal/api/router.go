package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"github.com/socialchef/chefgpt/internal/middleware"
	"github.com/socialchef/chefgpt/internal/sentry"
	"go.opentelemetry.io/otel"
)

const serverName = "chefgpt-server"

// NewRouter mounts the recipe form and the JSON capability endpoints.
func NewRouter(srv *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(otelchi.Middleware(serverName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(serverName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(sentry.HTTPMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.NotFound(srv.HandleNotFound)
	r.MethodNotAllowed(srv.HandleMethodNotAllowed)

	r.Get("/health", srv.HandleHealth)

	// Browser form, keyed by the session cookie
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(srv.cfg))
		r.Get("/", srv.HandleForm)
		r.Post("/", srv.HandleFormSubmit)
		r.Post("/dismiss", srv.HandleDismiss)
		r.Get("/api/session", srv.HandleSessionState)
	})

	r.Route("/api/recipes", func(r chi.Router) {
		r.Post("/generate", srv.HandleGenerateRecipe)
		r.Post("/modify", srv.HandleSuggestModifications)
		r.Post("/name", srv.HandleSuggestName)
		r.Post("/suggest", srv.HandleSuggestRecipes)
		r.Post("/details", srv.HandleRecipeDetails)
	})

	return r
}
