package booking

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrStudioNotFound   = errors.New("studio not found")
	ErrStudioInactive   = errors.New("studio is inactive")
	ErrSlotDoesNotFit   = errors.New("requested slot does not fit the booking grid")
	ErrSlotConflict     = errors.New("requested slot conflicts with an existing booking")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrNotOwner         = errors.New("booking belongs to another user")
)
