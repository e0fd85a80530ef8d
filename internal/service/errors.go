package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer maps this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrPlanNotFound indicates the user has no study plan.
	// API layer maps this to HTTP 404 Not Found.
	ErrPlanNotFound = errors.New("study plan not found")

	// ErrActivityNotFound indicates the calendar activity does not exist.
	// API layer maps this to HTTP 404 Not Found.
	ErrActivityNotFound = errors.New("calendar activity not found")

	// ErrCategoryNotFound indicates the referenced category does not exist.
	// API layer maps this to HTTP 404 Not Found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrUnmappedSubject indicates the practice-result subject label does not
	// resolve to any internal category. API layer maps this to HTTP 400.
	ErrUnmappedSubject = errors.New("subject label does not map to any category")

	// ErrInvalidExamDate indicates the requested exam date produces a
	// malformed plan range. API layer maps this to HTTP 400.
	ErrInvalidExamDate = errors.New("exam date must not be before the plan start date")

	// ErrPremiumRequired indicates the requested plan horizon exceeds what a
	// free subscription allows. API layer maps this to HTTP 403 Forbidden.
	ErrPremiumRequired = errors.New("premium subscription required for this plan length")

	// ErrInvalidScope indicates an unknown replacement scope.
	// API layer maps this to HTTP 400.
	ErrInvalidScope = errors.New("replacement scope must be 'single' or 'future'")

	// ErrActivityNotReplaceable indicates the activity is no longer pending
	// and cannot be replaced or transitioned. API layer maps this to HTTP 409.
	ErrActivityNotReplaceable = errors.New("activity is not pending")
)
