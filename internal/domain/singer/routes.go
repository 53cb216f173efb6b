package singer

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the singer router. The active roster is public for the
// portal, management is staff-only.
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
		r.Post("/{id}/photo", h.UploadPhoto)
	})

	return r
}
