package auth

import (
	"net"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/middleware"
	"github.com/imc/imc-api/internal/pkg/response"
	"github.com/imc/imc-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service      *Service
	resetService *PasswordResetService
}

// NewHandler creates auth handler
func NewHandler(service *Service, resetService *PasswordResetService) *Handler {
	return &Handler{service: service, resetService: resetService}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrEmailAlreadyExists:
			response.Conflict(w, "Email already registered")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("failed to register user")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Login(r.Context(), &req, clientIP(r))
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		case ErrAccountInactive:
			response.Forbidden(w, "Account is inactive")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("login failed with internal error")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired refresh token")
		return
	}

	response.OK(w, result)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	_ = h.service.Logout(r.Context(), req.RefreshToken)

	response.NoContent(w)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}

	response.OK(w, user)
}

// ChangePassword handles POST /auth/change-password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Current password is incorrect")
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to change password")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// ForgotPassword handles POST /auth/forgot-password
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.resetService.RequestReset(r.Context(), req.Email); err != nil {
		log.Error().Err(err).Msg("failed to process password reset request")
		response.InternalError(w)
		return
	}

	// Same answer whether or not the email exists.
	response.OK(w, map[string]string{"status": "sent"})
}

// ResetPassword handles POST /auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.resetService.ConfirmReset(r.Context(), req.Token, req.NewPassword); err != nil {
		switch err {
		case ErrInvalidResetToken:
			response.BadRequest(w, "Invalid or expired reset token")
		default:
			log.Error().Err(err).Msg("failed to reset password")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
