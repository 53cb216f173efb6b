package equipment

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

// Handler handles equipment HTTP requests
type Handler struct {
	service *Service
	repo    Repository
	uploads *upload.Service
}

// NewHandler creates equipment handler
func NewHandler(service *Service, repo Repository, uploads *upload.Service) *Handler {
	return &Handler{service: service, repo: repo, uploads: uploads}
}

// List handles GET /equipment
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	f := ListFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
		LowStock: q.Get("low_stock") == "true",
		Limit:    p.Limit,
		Offset:   p.Offset,
	}

	items, total, err := h.repo.List(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list equipment")
		response.InternalError(w)
		return
	}

	out := make([]Response, 0, len(items))
	for _, e := range items {
		out = append(out, NewResponse(e))
	}
	response.WithMeta(w, out, response.NewMeta(total, p.Page, p.Limit))
}

// Get handles GET /equipment/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid equipment ID")
		return
	}

	e, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Equipment not found")
		return
	}
	response.OK(w, NewResponse(e))
}

// Create handles POST /equipment
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
	e := &Equipment{
		ID:                uuid.New(),
		Name:              req.Name,
		Category:          req.Category,
		Brand:             req.Brand,
		SKU:               req.SKU,
		RatePerDay:        req.RatePerDay,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		Status:            StatusAvailable,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := h.repo.Create(r.Context(), e); err != nil {
		switch err {
		case ErrSKUTaken:
			response.Conflict(w, "SKU already in use")
		default:
			log.Error().Err(err).Str("sku", req.SKU).Msg("failed to create equipment")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewResponse(e))
}

// Update handles PUT /equipment/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid equipment ID")
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

	e, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Equipment not found")
		return
	}

	e.Name = req.Name
	e.Category = req.Category
	e.Brand = req.Brand
	e.SKU = req.SKU
	e.RatePerDay = req.RatePerDay
	e.Stock = req.Stock
	e.LowStockThreshold = req.LowStockThreshold
	e.Status = req.Status

	if err := h.repo.Update(r.Context(), e); err != nil {
		switch err {
		case ErrSKUTaken:
			response.Conflict(w, "SKU already in use")
		default:
			log.Error().Err(err).Str("equipment_id", id.String()).Msg("failed to update equipment")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewResponse(e))
}

// Delete handles DELETE /equipment/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid equipment ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Equipment not found")
		default:
			log.Error().Err(err).Str("equipment_id", id.String()).Msg("failed to delete equipment")
			response.InternalError(w)
		}
		return
	}
	response.NoContent(w)
}

// Availability handles GET /equipment/{id}/availability?date=YYYY-MM-DD
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid equipment ID")
		return
	}

	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		return
	}

	result, err := h.service.AvailabilityOnDate(r.Context(), id, day)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Equipment not found")
		default:
			log.Error().Err(err).Str("equipment_id", id.String()).Msg("failed to compute equipment availability")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// CreateRental handles POST /equipment/{id}/rentals
func (h *Handler) CreateRental(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid equipment ID")
		return
	}

	var req CreateRentalRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	rental, err := h.service.CreateRental(r.Context(), id, req.CustomerName, req.ContactNo, req.Quantity, start, end)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Equipment not found")
		case ErrNotRentable:
			response.BadRequest(w, "Equipment is not rentable")
		case ErrInsufficientStock:
			response.Conflict(w, "Insufficient stock for requested dates")
		default:
			log.Error().Err(err).Str("equipment_id", id.String()).Msg("failed to create rental")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewRentalResponse(rental))
}

// ListRentals handles GET /equipment/rentals
func (h *Handler) ListRentals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	f := RentalFilter{
		Status: q.Get("status"),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	if eid := q.Get("equipment_id"); eid != "" {
		id, err := uuid.Parse(eid)
		if err != nil {
			response.BadRequest(w, "Invalid equipment_id")
			return
		}
		f.EquipmentID = id
	}

	rentals, total, err := h.repo.ListRentals(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list rentals")
		response.InternalError(w)
		return
	}

	out := make([]RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		out = append(out, NewRentalResponse(rental))
	}
	response.WithMeta(w, out, response.NewMeta(total, p.Page, p.Limit))
}

// TransitionRental handles POST /equipment/rentals/{id}/status
func (h *Handler) TransitionRental(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid rental ID")
		return
	}

	var req TransitionRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	rental, err := h.service.Transition(r.Context(), id, req.Status)
	if err != nil {
		switch err {
		case ErrRentalNotFound:
			response.NotFound(w, "Rental not found")
		case ErrBadTransition:
			response.Conflict(w, "Invalid rental status transition")
		default:
			log.Error().Err(err).Str("rental_id", id.String()).Msg("failed to transition rental")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewRentalResponse(rental))
}

// UploadPhoto handles POST /equipment/{id}/photo (multipart "photo" field)
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if !h.uploads.Enabled() {
		response.Error(w, http.StatusServiceUnavailable, "UPLOADS_DISABLED", "Photo uploads are not configured")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid equipment ID")
		return
	}

	e, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Equipment not found")
		return
	}

	result, err := h.uploads.Photo(r, "equipment")
	if err != nil {
		switch err {
		case upload.ErrNoFile:
			response.BadRequest(w, "Missing photo file")
		case upload.ErrBadImage:
			response.BadRequest(w, "Unsupported image format")
		case upload.ErrTooLarge:
			response.BadRequest(w, "File exceeds upload limit")
		default:
			log.Error().Err(err).Str("equipment_id", id.String()).Msg("failed to store equipment photo")
			response.InternalError(w)
		}
		return
	}

	e.PhotoURL = sql.NullString{String: result.URL, Valid: true}
	if err := h.repo.Update(r.Context(), e); err != nil {
		log.Error().Err(err).Str("equipment_id", id.String()).Msg("failed to save equipment photo url")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}
