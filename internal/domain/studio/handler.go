package studio

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/pkg/query"
	"github.com/imc/imc-api/internal/pkg/response"
	"github.com/imc/imc-api/internal/pkg/validator"
)

// Handler handles studio HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates studio handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /studios. Portal callers only see active studios;
// staff see everything.
func (h *Handler) List(staffView bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		p := query.ParsePagination(q)

		f := ListFilter{
			Search:     q.Get("search"),
			City:       q.Get("city"),
			ActiveOnly: !staffView,
			Limit:      p.Limit,
			Offset:     p.Offset,
		}

		studios, total, err := h.repo.List(r.Context(), f)
		if err != nil {
			log.Error().Err(err).Msg("failed to list studios")
			response.InternalError(w)
			return
		}

		items := make([]Response, 0, len(studios))
		for _, s := range studios {
			items = append(items, NewResponse(s))
		}
		response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
	}
}

// Get handles GET /studios/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio ID")
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Studio not found")
		return
	}

	response.OK(w, NewResponse(s))
}

// Create handles POST /studios
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	now := time.Now()
	s := &Studio{
		ID:         uuid.New(),
		Name:       req.Name,
		Area:       req.Area,
		City:       req.City,
		State:      req.State,
		Capacity:   req.Capacity,
		SizeSqft:   req.SizeSqft,
		HourlyRate: req.HourlyRate,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.MapLink != "" {
		s.MapLink = sql.NullString{String: req.MapLink, Valid: true}
	}

	if err := h.repo.Create(r.Context(), s); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create studio")
		response.InternalError(w)
		return
	}

	response.Created(w, NewResponse(s))
}

// Update handles PUT /studios/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio ID")
		return
	}

	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Studio not found")
		return
	}

	s.Name = req.Name
	s.Area = req.Area
	s.City = req.City
	s.State = req.State
	s.Capacity = req.Capacity
	s.SizeSqft = req.SizeSqft
	s.HourlyRate = req.HourlyRate
	s.IsActive = *req.IsActive
	s.MapLink = sql.NullString{String: req.MapLink, Valid: req.MapLink != ""}

	if err := h.repo.Update(r.Context(), s); err != nil {
		log.Error().Err(err).Str("studio_id", id.String()).Msg("failed to update studio")
		response.InternalError(w)
		return
	}

	response.OK(w, NewResponse(s))
}

// Delete handles DELETE /studios/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Studio not found")
		default:
			log.Error().Err(err).Str("studio_id", id.String()).Msg("failed to delete studio")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
