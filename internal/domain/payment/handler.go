package payment

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

// CreateRequest for POST /payments
type CreateRequest struct {
	CustomerName string  `json:"customer_name" validate:"required,min=2,max=200"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Method       string  `json:"method" validate:"required,payment_method"`
	Reference    string  `json:"reference" validate:"omitempty,max=100"`
	PaidAt       string  `json:"paid_at" validate:"omitempty,isodate"`
	Notes        string  `json:"notes" validate:"omitempty,max=1000"`
}

// Response represents a payment in API responses
type Response struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	Amount       float64   `json:"amount"`
	Method       string    `json:"method"`
	Reference    string    `json:"reference,omitempty"`
	PaidAt       string    `json:"paid_at"`
	Notes        string    `json:"notes,omitempty"`
}

// NewResponse maps a Payment entity to its API shape
func NewResponse(p *Payment) Response {
	return Response{
		ID:           p.ID,
		CustomerName: p.CustomerName,
		Amount:       p.Amount,
		Method:       p.Method,
		Reference:    p.Reference.String,
		PaidAt:       p.PaidAt.Format("2006-01-02"),
		Notes:        p.Notes.String,
	}
}

// Handler handles payment HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates payment handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /payments
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	f := ListFilter{
		Search: q.Get("search"),
		Method: q.Get("method"),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			response.BadRequest(w, "Invalid from date")
			return
		}
		f.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			response.BadRequest(w, "Invalid to date")
			return
		}
		f.To = t
	}

	payments, total, err := h.repo.List(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list payments")
		response.InternalError(w)
		return
	}

	items := make([]Response, 0, len(payments))
	for _, p := range payments {
		items = append(items, NewResponse(p))
	}
	response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
}

// Total handles GET /payments/total
func (h *Handler) Total(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var from, to time.Time
	if s := q.Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(w, "Invalid from date")
			return
		}
		from = t
	}
	if s := q.Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(w, "Invalid to date")
			return
		}
		to = t
	}

	total, err := h.repo.Total(r.Context(), from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to total payments")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]float64{"total": total})
}

// Create handles POST /payments
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

	paidAt := time.Now()
	if req.PaidAt != "" {
		paidAt, _ = time.Parse("2006-01-02", req.PaidAt)
	}

	p := &Payment{
		ID:           uuid.New(),
		CustomerName: req.CustomerName,
		Amount:       req.Amount,
		Method:       req.Method,
		PaidAt:       paidAt,
		CreatedAt:    time.Now(),
	}
	if req.Reference != "" {
		p.Reference = sql.NullString{String: req.Reference, Valid: true}
	}
	if req.Notes != "" {
		p.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("failed to create payment")
		response.InternalError(w)
		return
	}
	response.Created(w, NewResponse(p))
}

// Get handles GET /payments/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Payment not found")
		return
	}
	response.OK(w, NewResponse(p))
}

// Delete handles DELETE /payments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Payment not found")
		default:
			log.Error().Err(err).Str("payment_id", id.String()).Msg("failed to delete payment")
			response.InternalError(w)
		}
		return
	}
	response.NoContent(w)
}
