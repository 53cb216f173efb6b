package listing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the router for one listing kind. Reads are public so the
// portal can show the calendar; writes require staff.
func (h *Handler) Routes(authMiddleware, staffOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(staffOnly)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
