package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidSection is returned when an exam section is not one of the
	// four known sections.
	ErrInvalidSection = errors.New("invalid exam section")

	// ErrInvalidDateRange is returned when a plan's exam date precedes its
	// creation date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidActivityType is returned when an activity type is not valid.
	ErrInvalidActivityType = errors.New("invalid activity type")

	// ErrInvalidActivityStatus is returned when an activity status is not valid.
	ErrInvalidActivityStatus = errors.New("invalid activity status")

	// ErrInvalidCounts is returned when attempt counters are negative or
	// inconsistent (correct exceeding total).
	ErrInvalidCounts = errors.New("invalid attempt counts")
)

// ValidationError carries the field that failed validation along with a
// human-readable message and the underlying sentinel error.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "validation failed for " + e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
