package sound

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

// Request is the create/update payload for a sound job
type Request struct {
	CustomerName  string  `json:"customer_name" validate:"required,min=2,max=200"`
	ContactNo     string  `json:"contact_no" validate:"required,min=7,max=20"`
	SystemType    string  `json:"system_type" validate:"required,max=100"`
	Speakers      int     `json:"speakers" validate:"min=0"`
	Microphones   int     `json:"microphones" validate:"min=0"`
	MixerIncluded bool    `json:"mixer_included"`
	EventDate     string  `json:"event_date" validate:"required,isodate"`
	Venue         string  `json:"venue" validate:"omitempty,max=200"`
	Price         float64 `json:"price" validate:"gte=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,payment_method"`
}

// Response represents a sound job in API responses
type Response struct {
	ID            uuid.UUID `json:"id"`
	CustomerName  string    `json:"customer_name"`
	ContactNo     string    `json:"contact_no"`
	SystemType    string    `json:"system_type"`
	Speakers      int       `json:"speakers"`
	Microphones   int       `json:"microphones"`
	MixerIncluded bool      `json:"mixer_included"`
	EventDate     string    `json:"event_date"`
	Venue         string    `json:"venue,omitempty"`
	Price         float64   `json:"price"`
	PaymentMethod string    `json:"payment_method"`
}

// NewResponse maps a Job entity to its API shape
func NewResponse(j *Job) Response {
	return Response{
		ID:            j.ID,
		CustomerName:  j.CustomerName,
		ContactNo:     j.ContactNo,
		SystemType:    j.SystemType,
		Speakers:      j.Speakers,
		Microphones:   j.Microphones,
		MixerIncluded: j.MixerIncluded,
		EventDate:     j.EventDate.Format("2006-01-02"),
		Venue:         j.Venue.String,
		Price:         j.Price,
		PaymentMethod: j.PaymentMethod,
	}
}

// Handler handles sound HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates sound handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /sound
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	jobs, total, err := h.repo.List(r.Context(), q.Get("search"), q.Get("system_type"), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list sound jobs")
		response.InternalError(w)
		return
	}

	items := make([]Response, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, NewResponse(j))
	}
	response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
}

// Get handles GET /sound/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	j, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Sound job not found")
		return
	}
	response.OK(w, NewResponse(j))
}

// Create handles POST /sound
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

	date, _ := time.Parse("2006-01-02", req.EventDate)
	now := time.Now()
	j := &Job{
		ID:            uuid.New(),
		CustomerName:  req.CustomerName,
		ContactNo:     req.ContactNo,
		SystemType:    req.SystemType,
		Speakers:      req.Speakers,
		Microphones:   req.Microphones,
		MixerIncluded: req.MixerIncluded,
		EventDate:     date,
		Price:         req.Price,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Venue != "" {
		j.Venue = sql.NullString{String: req.Venue, Valid: true}
	}

	if err := h.repo.Create(r.Context(), j); err != nil {
		log.Error().Err(err).Msg("failed to create sound job")
		response.InternalError(w)
		return
	}
	response.Created(w, NewResponse(j))
}

// Update handles PUT /sound/{id}
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

	j, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Sound job not found")
		return
	}

	date, _ := time.Parse("2006-01-02", req.EventDate)
	j.CustomerName = req.CustomerName
	j.ContactNo = req.ContactNo
	j.SystemType = req.SystemType
	j.Speakers = req.Speakers
	j.Microphones = req.Microphones
	j.MixerIncluded = req.MixerIncluded
	j.EventDate = date
	j.Venue = sql.NullString{String: req.Venue, Valid: req.Venue != ""}
	j.Price = req.Price
	j.PaymentMethod = req.PaymentMethod

	if err := h.repo.Update(r.Context(), j); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to update sound job")
		response.InternalError(w)
		return
	}
	response.OK(w, NewResponse(j))
}

// Delete handles DELETE /sound/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Sound job not found")
		default:
			log.Error().Err(err).Str("id", id.String()).Msg("failed to delete sound job")
			response.InternalError(w)
		}
		return
	}
	response.NoContent(w)
}

// Routes returns the sound router, staff-only.
func (h *Handler) Routes(authMiddleware, staffOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(staffOnly)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
