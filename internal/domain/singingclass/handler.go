package singingclass

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

// Request is the create/update payload for an enrollment
type Request struct {
	StudentName string  `json:"student_name" validate:"required,min=2,max=200"`
	ContactNo   string  `json:"contact_no" validate:"required,min=7,max=20"`
	Level       string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Weekday     string  `json:"weekday" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TimeSlot    string  `json:"time_slot" validate:"required,hhmm"`
	MonthlyFee  float64 `json:"monthly_fee" validate:"required,gt=0"`
	IsActive    *bool   `json:"is_active" validate:"required"`
	Notes       string  `json:"notes" validate:"omitempty,max=1000"`
}

// Response represents an enrollment in API responses
type Response struct {
	ID          uuid.UUID `json:"id"`
	StudentName string    `json:"student_name"`
	ContactNo   string    `json:"contact_no"`
	Level       string    `json:"level"`
	Weekday     string    `json:"weekday"`
	TimeSlot    string    `json:"time_slot"`
	MonthlyFee  float64   `json:"monthly_fee"`
	IsActive    bool      `json:"is_active"`
	Notes       string    `json:"notes,omitempty"`
}

// NewResponse maps an Enrollment entity to its API shape
func NewResponse(e *Enrollment) Response {
	return Response{
		ID:          e.ID,
		StudentName: e.StudentName,
		ContactNo:   e.ContactNo,
		Level:       e.Level,
		Weekday:     e.Weekday,
		TimeSlot:    e.TimeSlot,
		MonthlyFee:  e.MonthlyFee,
		IsActive:    e.IsActive,
		Notes:       e.Notes.String,
	}
}

// Handler handles singing class HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates singing class handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /singing-classes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	enrollments, total, err := h.repo.List(r.Context(),
		q.Get("search"), q.Get("level"), q.Get("active") == "true", p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list enrollments")
		response.InternalError(w)
		return
	}

	items := make([]Response, 0, len(enrollments))
	for _, e := range enrollments {
		items = append(items, NewResponse(e))
	}
	response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
}

// Get handles GET /singing-classes/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	e, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Enrollment not found")
		return
	}
	response.OK(w, NewResponse(e))
}

// Create handles POST /singing-classes
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
	e := &Enrollment{
		ID:          uuid.New(),
		StudentName: req.StudentName,
		ContactNo:   req.ContactNo,
		Level:       req.Level,
		Weekday:     req.Weekday,
		TimeSlot:    req.TimeSlot,
		MonthlyFee:  req.MonthlyFee,
		IsActive:    *req.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Notes != "" {
		e.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	if err := h.repo.Create(r.Context(), e); err != nil {
		log.Error().Err(err).Msg("failed to create enrollment")
		response.InternalError(w)
		return
	}
	response.Created(w, NewResponse(e))
}

// Update handles PUT /singing-classes/{id}
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

	e, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Enrollment not found")
		return
	}

	e.StudentName = req.StudentName
	e.ContactNo = req.ContactNo
	e.Level = req.Level
	e.Weekday = req.Weekday
	e.TimeSlot = req.TimeSlot
	e.MonthlyFee = req.MonthlyFee
	e.IsActive = *req.IsActive
	e.Notes = sql.NullString{String: req.Notes, Valid: req.Notes != ""}
	e.UpdatedAt = time.Now()

	if err := h.repo.Update(r.Context(), e); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to update enrollment")
		response.InternalError(w)
		return
	}
	response.OK(w, NewResponse(e))
}

// Delete handles DELETE /singing-classes/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Enrollment not found")
		default:
			log.Error().Err(err).Str("id", id.String()).Msg("failed to delete enrollment")
			response.InternalError(w)
		}
		return
	}
	response.NoContent(w)
}

// Routes returns the singing class router, staff-only.
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
