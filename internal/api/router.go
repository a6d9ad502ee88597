package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/siteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced on mutating
// routes. sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *siteservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	// Content.
	r.Get("/profile", h.Profile)
	r.Get("/nav", h.Nav)
	r.Get("/skills", h.Skills)
	r.Get("/testimonials", h.Testimonials)

	// Catalog.
	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{id}", h.GetProject)
	r.Get("/search", h.Search)
	r.Get("/tags", h.Tags)

	// Admin.
	r.With(AuthMiddleware(authEnabled, token)).Post("/reload", h.Reload)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
