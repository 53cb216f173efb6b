package user

import "errors"

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInactiveAccount = errors.New("account is inactive")
)
