package studio

import "errors"

var (
	ErrNotFound = errors.New("studio not found")
	ErrInactive = errors.New("studio is inactive")
)
