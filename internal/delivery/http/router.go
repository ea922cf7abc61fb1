package http

import (
	"net/http"

	"clicktrack/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the public ingest route, the JWT-protected admin query
// routes, and the operational endpoints.
func NewRouter(handler *Handler, verifier *TokenVerifier, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Healthz)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Public write: the marketing site submits clicks without credentials.
	r.Post("/api/clicks", handler.RecordClick)

	// Protected read: only the admin dashboard sees aggregates and raw events.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(AdminAuth(verifier))
		r.Get("/stats", handler.GetStats)
		r.Get("/history", handler.GetHistory)
		r.Get("/details", handler.GetDetails)
	})

	return r
}
