package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/docservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Search and reporting.
	r.Get("/search", h.Search)
	r.Get("/stats", h.Stats)
	r.Get("/status", h.Status)

	// Maintenance.
	r.Post("/maintenance", h.Maintenance)

	// Documents.
	r.Get("/documents", h.ListDocuments)
	r.Post("/documents", h.AddDocument)
	r.Get("/documents/*", h.GetDocument)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
