package equipment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the equipment router. Everything is staff-facing except
// the per-item availability lookup, which the portal uses.
func (h *Handler) Routes(authMiddleware, staffOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}/availability", h.Availability)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(staffOnly)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/rentals", h.ListRentals)
		r.Post("/rentals/{id}/status", h.TransitionRental)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/photo", h.UploadPhoto)
		r.Post("/{id}/rentals", h.CreateRental)
	})

	return r
}
