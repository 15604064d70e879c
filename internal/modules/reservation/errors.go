package reservation

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not_found")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("vehicle already reserved for requested dates")
	ErrInvalidTransition = errors.New("invalid_status_transition")
)
