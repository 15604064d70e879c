package vehicle

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not_found")
	ErrRegistrationTaken = errors.New("registration number already exists")
)
