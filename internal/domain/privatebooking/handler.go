package privatebooking

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

// Request is the create/update payload for a private booking
type Request struct {
	CustomerName   string   `json:"customer_name" validate:"required,min=2,max=200"`
	ContactNo      string   `json:"contact_no" validate:"required,min=7,max=20"`
	EventType      string   `json:"event_type" validate:"required,max=100"`
	Venue          string   `json:"venue" validate:"required,max=200"`
	EventDate      string   `json:"event_date" validate:"required,isodate"`
	TimeSlot       string   `json:"time_slot" validate:"required,hhmm"`
	DurationHours  float64  `json:"duration_hours" validate:"required,gte=1,lte=24"`
	GuestCount     int      `json:"guest_count" validate:"required,min=1"`
	PaymentMethods []string `json:"payment_methods" validate:"required,min=1,dive,payment_method"`
	Price          float64  `json:"price" validate:"gte=0"`
	Notes          string   `json:"notes" validate:"omitempty,max=1000"`
}

// Response represents a private booking in API responses
type Response struct {
	ID             uuid.UUID `json:"id"`
	CustomerName   string    `json:"customer_name"`
	ContactNo      string    `json:"contact_no"`
	EventType      string    `json:"event_type"`
	Venue          string    `json:"venue"`
	EventDate      string    `json:"event_date"`
	TimeSlot       string    `json:"time_slot"`
	DurationHours  float64   `json:"duration_hours"`
	GuestCount     int       `json:"guest_count"`
	PaymentMethods []string  `json:"payment_methods"`
	Price          float64   `json:"price"`
	Notes          string    `json:"notes,omitempty"`
}

// NewResponse maps a Booking entity to its API shape
func NewResponse(b *Booking) Response {
	return Response{
		ID:             b.ID,
		CustomerName:   b.CustomerName,
		ContactNo:      b.ContactNo,
		EventType:      b.EventType,
		Venue:          b.Venue,
		EventDate:      b.EventDate.Format("2006-01-02"),
		TimeSlot:       b.TimeSlot,
		DurationHours:  b.DurationHours,
		GuestCount:     b.GuestCount,
		PaymentMethods: b.PaymentMethods,
		Price:          b.Price,
		Notes:          b.Notes.String,
	}
}

// Handler handles private booking HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates private booking handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /private-bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	bookings, total, err := h.repo.List(r.Context(), q.Get("search"), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list private bookings")
		response.InternalError(w)
		return
	}

	items := make([]Response, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, NewResponse(b))
	}
	response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
}

// Get handles GET /private-bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	b, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Private booking not found")
		return
	}
	response.OK(w, NewResponse(b))
}

// Create handles POST /private-bookings
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
	b := &Booking{
		ID:             uuid.New(),
		CustomerName:   req.CustomerName,
		ContactNo:      req.ContactNo,
		EventType:      req.EventType,
		Venue:          req.Venue,
		EventDate:      date,
		TimeSlot:       req.TimeSlot,
		DurationHours:  req.DurationHours,
		GuestCount:     req.GuestCount,
		PaymentMethods: req.PaymentMethods,
		Price:          req.Price,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Notes != "" {
		b.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	if err := h.repo.Create(r.Context(), b); err != nil {
		log.Error().Err(err).Msg("failed to create private booking")
		response.InternalError(w)
		return
	}
	response.Created(w, NewResponse(b))
}

// Update handles PUT /private-bookings/{id}
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

	b, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Private booking not found")
		return
	}

	date, _ := time.Parse("2006-01-02", req.EventDate)
	b.CustomerName = req.CustomerName
	b.ContactNo = req.ContactNo
	b.EventType = req.EventType
	b.Venue = req.Venue
	b.EventDate = date
	b.TimeSlot = req.TimeSlot
	b.DurationHours = req.DurationHours
	b.GuestCount = req.GuestCount
	b.PaymentMethods = req.PaymentMethods
	b.Price = req.Price
	b.Notes = sql.NullString{String: req.Notes, Valid: req.Notes != ""}

	if err := h.repo.Update(r.Context(), b); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to update private booking")
		response.InternalError(w)
		return
	}
	response.OK(w, NewResponse(b))
}

// Delete handles DELETE /private-bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Private booking not found")
		default:
			log.Error().Err(err).Str("id", id.String()).Msg("failed to delete private booking")
			response.InternalError(w)
		}
		return
	}
	response.NoContent(w)
}

// Routes returns the private booking router, staff-only.
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
