package equipment

import "errors"

var (
	ErrNotFound          = errors.New("equipment not found")
	ErrRentalNotFound    = errors.New("rental not found")
	ErrSKUTaken          = errors.New("sku already in use")
	ErrNotRentable       = errors.New("equipment is not rentable")
	ErrInsufficientStock = errors.New("insufficient stock for requested dates")
	ErrBadTransition     = errors.New("invalid rental status transition")
)
