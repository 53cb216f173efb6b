package photography

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

// Request is the create/update payload for a shoot
type Request struct {
	ClientName      string  `json:"client_name" validate:"required,min=2,max=200"`
	ContactNo       string  `json:"contact_no" validate:"required,min=7,max=20"`
	EventType       string  `json:"event_type" validate:"required,max=100"`
	Package         string  `json:"package" validate:"required,max=100"`
	ShootDate       string  `json:"shoot_date" validate:"required,isodate"`
	StartTime       string  `json:"start_time" validate:"required,hhmm"`
	DurationHours   float64 `json:"duration_hours" validate:"required,gte=0.5,lte=24"`
	Photographers   int     `json:"photographers" validate:"required,min=1"`
	Videographers   int     `json:"videographers" validate:"min=0"`
	DroneCoverage   bool    `json:"drone_coverage"`
	BasePrice       float64 `json:"base_price" validate:"required,gt=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	TaxPercent      float64 `json:"tax_percent" validate:"gte=0,lte=100"`
	PaymentMethod   string  `json:"payment_method" validate:"required,payment_method"`
	Notes           string  `json:"notes" validate:"omitempty,max=1000"`
}

// Response represents a shoot in API responses
type Response struct {
	ID              uuid.UUID `json:"id"`
	ClientName      string    `json:"client_name"`
	ContactNo       string    `json:"contact_no"`
	EventType       string    `json:"event_type"`
	Package         string    `json:"package"`
	ShootDate       string    `json:"shoot_date"`
	StartTime       string    `json:"start_time"`
	DurationHours   float64   `json:"duration_hours"`
	Photographers   int       `json:"photographers"`
	Videographers   int       `json:"videographers"`
	DroneCoverage   bool      `json:"drone_coverage"`
	BasePrice       float64   `json:"base_price"`
	DiscountPercent float64   `json:"discount_percent"`
	TaxPercent      float64   `json:"tax_percent"`
	FinalPrice      float64   `json:"final_price"`
	PaymentMethod   string    `json:"payment_method"`
	Notes           string    `json:"notes,omitempty"`
}

// NewResponse maps a Shoot entity to its API shape
func NewResponse(s *Shoot) Response {
	return Response{
		ID:              s.ID,
		ClientName:      s.ClientName,
		ContactNo:       s.ContactNo,
		EventType:       s.EventType,
		Package:         s.Package,
		ShootDate:       s.ShootDate.Format("2006-01-02"),
		StartTime:       s.StartTime,
		DurationHours:   s.DurationHours,
		Photographers:   s.Photographers,
		Videographers:   s.Videographers,
		DroneCoverage:   s.DroneCoverage,
		BasePrice:       s.BasePrice,
		DiscountPercent: s.DiscountPercent,
		TaxPercent:      s.TaxPercent,
		FinalPrice:      s.FinalPrice(),
		PaymentMethod:   s.PaymentMethod,
		Notes:           s.Notes.String,
	}
}

// Handler handles photography HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates photography handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /photography
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	shoots, total, err := h.repo.List(r.Context(), q.Get("search"), q.Get("event_type"), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list photography bookings")
		response.InternalError(w)
		return
	}

	items := make([]Response, 0, len(shoots))
	for _, s := range shoots {
		items = append(items, NewResponse(s))
	}
	response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
}

// Get handles GET /photography/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Photography booking not found")
		return
	}
	response.OK(w, NewResponse(s))
}

// Create handles POST /photography
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

	date, _ := time.Parse("2006-01-02", req.ShootDate)
	now := time.Now()
	s := &Shoot{
		ID:              uuid.New(),
		ClientName:      req.ClientName,
		ContactNo:       req.ContactNo,
		EventType:       req.EventType,
		Package:         req.Package,
		ShootDate:       date,
		StartTime:       req.StartTime,
		DurationHours:   req.DurationHours,
		Photographers:   req.Photographers,
		Videographers:   req.Videographers,
		DroneCoverage:   req.DroneCoverage,
		BasePrice:       req.BasePrice,
		DiscountPercent: req.DiscountPercent,
		TaxPercent:      req.TaxPercent,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.Notes != "" {
		s.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	if err := h.repo.Create(r.Context(), s); err != nil {
		log.Error().Err(err).Msg("failed to create photography booking")
		response.InternalError(w)
		return
	}
	response.Created(w, NewResponse(s))
}

// Update handles PUT /photography/{id}
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
		response.NotFound(w, "Photography booking not found")
		return
	}

	date, _ := time.Parse("2006-01-02", req.ShootDate)
	s.ClientName = req.ClientName
	s.ContactNo = req.ContactNo
	s.EventType = req.EventType
	s.Package = req.Package
	s.ShootDate = date
	s.StartTime = req.StartTime
	s.DurationHours = req.DurationHours
	s.Photographers = req.Photographers
	s.Videographers = req.Videographers
	s.DroneCoverage = req.DroneCoverage
	s.BasePrice = req.BasePrice
	s.DiscountPercent = req.DiscountPercent
	s.TaxPercent = req.TaxPercent
	s.PaymentMethod = req.PaymentMethod
	s.Notes = sql.NullString{String: req.Notes, Valid: req.Notes != ""}

	if err := h.repo.Update(r.Context(), s); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to update photography booking")
		response.InternalError(w)
		return
	}
	response.OK(w, NewResponse(s))
}

// Delete handles DELETE /photography/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Photography booking not found")
		default:
			log.Error().Err(err).Str("id", id.String()).Msg("failed to delete photography booking")
			response.InternalError(w)
		}
		return
	}
	response.NoContent(w)
}
