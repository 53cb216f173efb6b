package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the payment router, staff-only throughout.
func (h *Handler) Routes(authMiddleware, staffOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(staffOnly)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/total", h.Total)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	return r
}
