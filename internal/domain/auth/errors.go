package auth

import "errors"

var (
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRole          = errors.New("invalid role")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrRefreshTokenRequired = errors.New("refresh token required")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
)
