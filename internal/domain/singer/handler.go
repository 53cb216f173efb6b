package singer

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/pkg/query"
	"github.com/imc/imc-api/internal/pkg/response"
	"github.com/imc/imc-api/internal/pkg/upload"
	"github.com/imc/imc-api/internal/pkg/validator"
)

// Request is the create/update payload for a roster entry
type Request struct {
	Name            string  `json:"name" validate:"required,min=2,max=200"`
	Genre           string  `json:"genre" validate:"required,min=2,max=100"`
	ExperienceYears int     `json:"experience_years" validate:"gte=0,lte=80"`
	Area            string  `json:"area" validate:"required,max=200"`
	City            string  `json:"city" validate:"required,max=100"`
	State           string  `json:"state" validate:"required,max=100"`
	RatePerEvent    float64 `json:"rate_per_event" validate:"required,gt=0"`
	Gender          string  `json:"gender" validate:"required,oneof=male female other"`
	IsActive        *bool   `json:"is_active" validate:"required"`
}

// Response represents a singer in API responses
type Response struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Genre           string    `json:"genre"`
	ExperienceYears int       `json:"experience_years"`
	Area            string    `json:"area"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	RatePerEvent    float64   `json:"rate_per_event"`
	Gender          string    `json:"gender"`
	IsActive        bool      `json:"is_active"`
	PhotoURL        string    `json:"photo_url,omitempty"`
}

// NewResponse maps a Singer entity to its API shape
func NewResponse(s *Singer) Response {
	return Response{
		ID:              s.ID,
		Name:            s.Name,
		Genre:           s.Genre,
		ExperienceYears: s.ExperienceYears,
		Area:            s.Area,
		City:            s.City,
		State:           s.State,
		RatePerEvent:    s.RatePerEvent,
		Gender:          s.Gender,
		IsActive:        s.IsActive,
		PhotoURL:        s.PhotoURL.String,
	}
}

// Handler handles singer HTTP requests
type Handler struct {
	repo    Repository
	uploads *upload.Service
}

// NewHandler creates singer handler
func NewHandler(repo Repository, uploads *upload.Service) *Handler {
	return &Handler{repo: repo, uploads: uploads}
}

// List handles GET /singers
func (h *Handler) List(staffView bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		p := query.ParsePagination(q)

		f := ListFilter{
			Search:     q.Get("search"),
			Genre:      q.Get("genre"),
			City:       q.Get("city"),
			ActiveOnly: !staffView,
			Limit:      p.Limit,
			Offset:     p.Offset,
		}

		singers, total, err := h.repo.List(r.Context(), f)
		if err != nil {
			log.Error().Err(err).Msg("failed to list singers")
			response.InternalError(w)
			return
		}

		items := make([]Response, 0, len(singers))
		for _, s := range singers {
			items = append(items, NewResponse(s))
		}
		response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
	}
}

// Get handles GET /singers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Singer not found")
		return
	}
	response.OK(w, NewResponse(s))
}

// Create handles POST /singers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	now := time.Now()
	s := &Singer{
		ID:              uuid.New(),
		Name:            req.Name,
		Genre:           req.Genre,
		ExperienceYears: req.ExperienceYears,
		Area:            req.Area,
		City:            req.City,
		State:           req.State,
		RatePerEvent:    req.RatePerEvent,
		Gender:          req.Gender,
		IsActive:        *req.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.repo.Create(r.Context(), s); err != nil {
		log.Error().Err(err).Msg("failed to create singer")
		response.InternalError(w)
		return
	}
	response.Created(w, NewResponse(s))
}

// Update handles PUT /singers/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	var req Request
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
		response.NotFound(w, "Singer not found")
		return
	}

	s.Name = req.Name
	s.Genre = req.Genre
	s.ExperienceYears = req.ExperienceYears
	s.Area = req.Area
	s.City = req.City
	s.State = req.State
	s.RatePerEvent = req.RatePerEvent
	s.Gender = req.Gender
	s.IsActive = *req.IsActive
	s.UpdatedAt = time.Now()

	if err := h.repo.Update(r.Context(), s); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to update singer")
		response.InternalError(w)
		return
	}
	response.OK(w, NewResponse(s))
}

// Delete handles DELETE /singers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Singer not found")
		default:
			log.Error().Err(err).Str("id", id.String()).Msg("failed to delete singer")
			response.InternalError(w)
		}
		return
	}
	response.NoContent(w)
}

// UploadPhoto handles POST /singers/{id}/photo (multipart "photo" field)
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if !h.uploads.Enabled() {
		response.Error(w, http.StatusServiceUnavailable, "UPLOADS_DISABLED", "Photo uploads are not configured")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Singer not found")
		return
	}

	result, err := h.uploads.Photo(r, "singers")
	if err != nil {
		switch err {
		case upload.ErrNoFile:
			response.BadRequest(w, "Missing photo file")
		case upload.ErrBadImage:
			response.BadRequest(w, "Unsupported image format")
		case upload.ErrTooLarge:
			response.BadRequest(w, "File exceeds upload limit")
		default:
			log.Error().Err(err).Str("singer_id", id.String()).Msg("failed to store singer photo")
			response.InternalError(w)
		}
		return
	}

	s.PhotoURL = sql.NullString{String: result.URL, Valid: true}
	s.UpdatedAt = time.Now()
	if err := h.repo.Update(r.Context(), s); err != nil {
		log.Error().Err(err).Str("singer_id", id.String()).Msg("failed to save singer photo url")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}
