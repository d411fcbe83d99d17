package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity does not exist or is soft-deleted.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when a registration collides with an existing email.
	// The store's unique constraint and the service pre-check both map here.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrInvalidCredentials is returned on a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when an authenticated user may not mutate a resource.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports missing or malformed caller input for a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
