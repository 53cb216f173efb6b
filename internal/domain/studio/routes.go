package studio

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the studio router. Reads are public (portal shows
// active studios); writes require staff.
func (h *Handler) Routes(authMiddleware, staffOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List(false))
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(staffOnly)
		r.Get("/all", h.List(true))
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
