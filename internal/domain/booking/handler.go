package booking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/domain/user"
	"github.com/imc/imc-api/internal/middleware"
	"github.com/imc/imc-api/internal/pkg/query"
	"github.com/imc/imc-api/internal/pkg/response"
	"github.com/imc/imc-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Availability handles GET /bookings/availability?studio_id&date&duration_hours
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	studioID, err := uuid.Parse(q.Get("studio_id"))
	if err != nil {
		response.BadRequest(w, "Invalid studio_id")
		return
	}

	date := q.Get("date")
	if _, err := time.Parse(DateLayout, date); err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		return
	}

	duration := 1.0
	if d := q.Get("duration_hours"); d != "" {
		v, err := strconv.ParseFloat(d, 64)
		if err != nil || v < 0.5 {
			response.BadRequest(w, "Invalid duration_hours")
			return
		}
		duration = v
	}

	result, err := h.service.Availability(r.Context(), studioID, date, duration)
	if err != nil {
		switch err {
		case ErrStudioNotFound:
			response.NotFound(w, "Studio not found")
		case ErrStudioInactive:
			response.BadRequest(w, "Studio is inactive")
		default:
			log.Error().Err(err).Str("studio_id", studioID.String()).Msg("failed to compute availability")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Create handles POST /bookings
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

	userID := middleware.GetUserID(r.Context())

	bk, err := h.service.Create(r.Context(), &req, userID)
	if err != nil {
		switch err {
		case ErrStudioNotFound:
			response.NotFound(w, "Studio not found")
		case ErrStudioInactive:
			response.BadRequest(w, "Studio is inactive")
		case ErrSlotDoesNotFit:
			response.BadRequest(w, "Requested time does not fit the booking grid")
		case ErrSlotConflict:
			response.Conflict(w, "Slot no longer available, refresh availability and pick again")
		default:
			log.Error().Err(err).Str("studio_id", req.StudioID.String()).Msg("failed to create booking")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewResponse(bk))
}

// List handles GET /bookings (staff view with filters)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	f := ListFilter{
		Search:           q.Get("search"),
		IncludeCancelled: q.Get("include_cancelled") == "true",
		Limit:            p.Limit,
		Offset:           p.Offset,
	}
	if sid := q.Get("studio_id"); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			response.BadRequest(w, "Invalid studio_id")
			return
		}
		f.StudioID = id
	}
	if d := q.Get("date"); d != "" {
		day, err := time.Parse(DateLayout, d)
		if err != nil {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
			return
		}
		f.DateFrom, f.DateTo = day, day
	}

	h.writeList(w, r, f, p)
}

// Upcoming handles GET /bookings/upcoming?days=N
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	days := 7
	if d := q.Get("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 && v <= 365 {
			days = v
		}
	}

	bookings, total, err := h.service.Upcoming(r.Context(), days, p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list upcoming bookings")
		response.InternalError(w)
		return
	}

	items := make([]Response, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, NewResponse(b))
	}
	response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
}

// My handles GET /bookings/my (portal user's own bookings)
func (h *Handler) My(w http.ResponseWriter, r *http.Request) {
	p := query.ParsePagination(r.URL.Query())

	f := ListFilter{
		UserID:           middleware.GetUserID(r.Context()),
		IncludeCancelled: true,
		Limit:            p.Limit,
		Offset:           p.Offset,
	}
	h.writeList(w, r, f, p)
}

// Get handles GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	bk, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Booking not found")
		return
	}

	// Customers only see their own bookings.
	role := middleware.GetRole(r.Context())
	if role == string(user.RoleCustomer) {
		userID := middleware.GetUserID(r.Context())
		if !bk.UserID.Valid || bk.UserID.UUID != userID {
			response.NotFound(w, "Booking not found")
			return
		}
	}

	response.OK(w, NewResponse(bk))
}

// Update handles PUT /bookings/{id} (staff only)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
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

	bk, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Booking not found")
		default:
			log.Error().Err(err).Str("booking_id", id.String()).Msg("failed to update booking")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewResponse(bk))
}

// Cancel handles POST /bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	role := middleware.GetRole(r.Context())
	staff := role == string(user.RoleAdmin) || role == string(user.RoleStaff)
	requesterID := middleware.GetUserID(r.Context())

	bk, err := h.service.Cancel(r.Context(), id, requesterID, staff)
	if err != nil {
		switch err {
		case ErrNotFound, ErrNotOwner:
			response.NotFound(w, "Booking not found")
		case ErrAlreadyCancelled:
			response.Conflict(w, "Booking already cancelled")
		default:
			log.Error().Err(err).Str("booking_id", id.String()).Msg("failed to cancel booking")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewResponse(bk))
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, f ListFilter, p query.Pagination) {
	bookings, total, err := h.service.List(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")
		response.InternalError(w)
		return
	}

	items := make([]Response, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, NewResponse(b))
	}
	response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
}
