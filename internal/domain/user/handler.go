package user

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/pkg/response"
	"github.com/imc/imc-api/internal/pkg/validator"
)

// Handler handles user administration HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createStaffRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Role      string `json:"role" validate:"required,role"`
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	MobileNo  string    `json:"mobile_no,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	LastLogin string    `json:"last_login_at,omitempty"`
	CreatedAt string    `json:"created_at"`
}

func newUserResponse(u *User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		MobileNo:  u.MobileNo.String,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt.Valid {
		resp.LastLogin = u.LastLoginAt.Time.Format(time.RFC3339)
	}
	return resp
}

// List handles GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	users, total, err := h.service.List(r.Context(), q.Get("role"), q.Get("search"), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		response.InternalError(w)
		return
	}

	items := make([]userResponse, 0, len(users))
	for _, u := range users {
		items = append(items, newUserResponse(u))
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// Get handles GET /users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}

	response.OK(w, newUserResponse(u))
}

// Create handles POST /users (admin creates staff accounts)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStaffRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	u, err := h.service.CreateStaff(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, Role(req.Role))
	if err != nil {
		switch err {
		case ErrEmailTaken:
			response.Conflict(w, "Email already registered")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("failed to create staff user")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, newUserResponse(u))
}

// SetActive handles PATCH /users/{id}/active
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req setActiveRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.SetActive(r.Context(), id, *req.IsActive); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", id.String()).Msg("failed to update user status")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
