// Package apperr defines the error taxonomy shared across the API and the
// publish pipeline. Callers classify failures with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchEntity means a referenced show/episode/audio/image/user
	// does not exist.
	ErrNoSuchEntity = errors.New("no such entity")

	// ErrAccessNotAllowed means the entity exists but is not owned by the
	// requesting user.
	ErrAccessNotAllowed = errors.New("access not allowed")

	// ErrInvalidValue means a field is malformed, e.g. a bad alias.
	ErrInvalidValue = errors.New("invalid value")

	// ErrValidation means a status-dependent required field is missing.
	ErrValidation = errors.New("validation failed")

	// ErrStorage means an object storage upload or delete failed.
	ErrStorage = errors.New("storage operation failed")
)

// ValidationError names the field that failed status-dependent validation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s required", e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
