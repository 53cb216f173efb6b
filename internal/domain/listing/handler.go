package listing

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

// Request is the create/update payload for a listing
type Request struct {
	Title       string  `json:"title" validate:"required,min=2,max=200"`
	Location    string  `json:"location" validate:"required,max=200"`
	EventDate   string  `json:"event_date" validate:"required,isodate"`
	StartTime   string  `json:"start_time" validate:"omitempty,hhmm"`
	TicketPrice float64 `json:"ticket_price" validate:"gte=0"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
}

// Response represents a listing in API responses
type Response struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	EventDate   string    `json:"event_date"`
	StartTime   string    `json:"start_time,omitempty"`
	TicketPrice float64   `json:"ticket_price"`
	Description string    `json:"description,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// NewResponse maps a Listing entity to its API shape
func NewResponse(l *Listing) Response {
	return Response{
		ID:          l.ID,
		Kind:        l.Kind,
		Title:       l.Title,
		Location:    l.Location,
		EventDate:   l.EventDate.Format("2006-01-02"),
		StartTime:   l.StartTime.String,
		TicketPrice: l.TicketPrice,
		Description: l.Description.String,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

// Handler serves one listing kind; the same handler type backs both the
// /events and /shows mounts.
type Handler struct {
	repo Repository
	kind Kind
}

// NewHandler creates a listing handler bound to one kind
func NewHandler(repo Repository, kind Kind) *Handler {
	return &Handler{repo: repo, kind: kind}
}

// List handles GET / with search, location and upcoming filters
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	f := ListFilter{
		Kind:     h.kind,
		Search:   q.Get("search"),
		Location: q.Get("location"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	}
	if q.Get("upcoming") == "true" {
		f.UpcomingFrom = time.Now().Truncate(24 * time.Hour)
	}

	listings, total, err := h.repo.List(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Str("kind", string(h.kind)).Msg("failed to list listings")
		response.InternalError(w)
		return
	}

	items := make([]Response, 0, len(listings))
	for _, l := range listings {
		items = append(items, NewResponse(l))
	}
	response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
}

// Get handles GET /{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	l, err := h.repo.GetByID(r.Context(), h.kind, id)
	if err != nil {
		response.NotFound(w, "Not found")
		return
	}
	response.OK(w, NewResponse(l))
}

// Create handles POST /
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
	l := &Listing{
		ID:          uuid.New(),
		Kind:        h.kind,
		Title:       req.Title,
		Location:    req.Location,
		EventDate:   date,
		TicketPrice: req.TicketPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.StartTime != "" {
		l.StartTime = sql.NullString{String: req.StartTime, Valid: true}
	}
	if req.Description != "" {
		l.Description = sql.NullString{String: req.Description, Valid: true}
	}

	if err := h.repo.Create(r.Context(), l); err != nil {
		log.Error().Err(err).Str("kind", string(h.kind)).Msg("failed to create listing")
		response.InternalError(w)
		return
	}
	response.Created(w, NewResponse(l))
}

// Update handles PUT /{id}
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

	l, err := h.repo.GetByID(r.Context(), h.kind, id)
	if err != nil {
		response.NotFound(w, "Not found")
		return
	}

	date, _ := time.Parse("2006-01-02", req.EventDate)
	l.Title = req.Title
	l.Location = req.Location
	l.EventDate = date
	l.StartTime = sql.NullString{String: req.StartTime, Valid: req.StartTime != ""}
	l.TicketPrice = req.TicketPrice
	l.Description = sql.NullString{String: req.Description, Valid: req.Description != ""}

	if err := h.repo.Update(r.Context(), l); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to update listing")
		response.InternalError(w)
		return
	}
	response.OK(w, NewResponse(l))
}

// Delete handles DELETE /{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.repo.Delete(r.Context(), h.kind, id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Not found")
		default:
			log.Error().Err(err).Str("id", id.String()).Msg("failed to delete listing")
			response.InternalError(w)
		}
		return
	}
	response.NoContent(w)
}
