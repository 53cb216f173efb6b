package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the booking router. Availability is public so the portal
// can render slot grids before login; everything else requires auth, with
// the admin table and edits gated to staff.
func (h *Handler) Routes(authMiddleware, staffOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/availability", h.Availability)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/my", h.My)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/cancel", h.Cancel)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(staffOnly)
		r.Get("/", h.List)
		r.Get("/upcoming", h.Upcoming)
		r.Put("/{id}", h.Update)
	})

	return r
}
