package service

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Services wrap them
// with context via fmt.Errorf("...: %w", Err...).
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("already exists")
)
