package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns user administration router. All routes are admin-only;
// the caller mounts auth and role middleware.
func (h *Handler) Routes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminOnly)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/active", h.SetActive)

	return r
}
