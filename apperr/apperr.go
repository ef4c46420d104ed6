// Package apperr holds the error taxonomy shared by services and handlers.
// Ownership failures are reported as ErrNotFound so callers cannot probe for
// the existence of other users' content.
package apperr

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrInvalid   = errors.New("invalid input")
	ErrConflict  = errors.New("conflict")
)
