package api

import (
	"errors"
	"net/http"

	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/service"
	"github.com/premedly/studyplan-api/internal/service/auth"
	"github.com/premedly/studyplan-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidSourceSecret):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, service.ErrPremiumRequired):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrActivityNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrActivityNotReplaceable),
		errors.Is(err, store.ErrPlanExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrUnmappedSubject),
		errors.Is(err, service.ErrInvalidExamDate),
		errors.Is(err, service.ErrInvalidScope),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidSection),
		errors.Is(err, domain.ErrInvalidActivityType),
		errors.Is(err, domain.ErrInvalidActivityStatus),
		errors.Is(err, domain.ErrInvalidCounts),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidSourceSecret):
		return "Invalid source secret"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	case errors.Is(err, service.ErrPremiumRequired):
		return "A premium subscription is required for this plan length"

	// Not found errors
	case errors.Is(err, service.ErrPlanNotFound):
		return "Study plan not found"

	case errors.Is(err, service.ErrActivityNotFound):
		return "Activity not found"

	case errors.Is(err, service.ErrCategoryNotFound):
		return "Category not found"

	// Conflict errors
	case errors.Is(err, service.ErrActivityNotReplaceable):
		return "Activity is no longer pending"

	case errors.Is(err, store.ErrPlanExists):
		return "A study plan already exists"

	// Bad request errors
	case errors.Is(err, service.ErrUnmappedSubject):
		return "Unknown subject label"

	case errors.Is(err, service.ErrInvalidExamDate):
		return "Exam date must not be in the past"

	case errors.Is(err, service.ErrInvalidScope):
		return "Scope must be 'single' or 'future'"

	case errors.Is(err, domain.ErrInvalidSection):
		return "Unknown exam section"

	case errors.Is(err, domain.ErrInvalidActivityType):
		return "Unknown activity type"

	case errors.Is(err, domain.ErrInvalidActivityStatus):
		return "Unknown activity status"

	case errors.Is(err, domain.ErrInvalidCounts):
		return "Counts must not be negative"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}
