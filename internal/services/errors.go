package services

import "errors"

// Sentinel errors shared by all services. Handlers map them to HTTP status
// codes with errors.Is; services wrap them with fmt.Errorf("...: %w", ...)
// to add detail.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)
