package user

import "errors"

var (
	ErrNotFound  = errors.New("not_found")
	ErrForbidden = errors.New("forbidden")
)
