package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/delilar/avito-intenship-2025/internal/platform/logger"
	"github.com/delilar/avito-intenship-2025/internal/port/http/middleware"
)

// NewRouter mounts the editor and catalog routes. All editor operations
// require an authenticated user; the catalog passthroughs are public.
func NewRouter(h *EditorHandler, jwtSecret string, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return otelhttp.NewHandler(next, "listing-editor")
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, log))

		r.Route("/api/editor/session", func(r chi.Router) {
			r.Post("/", h.HandleStartSession)
			r.Get("/", h.HandleState)
			r.Delete("/", h.HandleClose)
			r.Post("/edit/{id}", h.HandleEnterEditMode)
			r.Post("/change", h.HandleChange)
			r.Post("/next", h.HandleNext)
			r.Post("/back", h.HandleBack)
			r.Post("/submit", h.HandleSubmit)
			r.Post("/image", h.HandleAttachImage)
		})
	})

	r.Get("/api/listings", h.HandleListListings)
	r.Get("/api/listings/{id}", h.HandleGetListing)

	return r
}
