package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
)

// DataPulseStore defines the interface for evidence-record persistence.
// Pulses are append-only: there is no update or delete, and concurrent
// ingests from multiple sources simply add more rows.
type DataPulseStore interface {
	// Create appends a new pulse. Returns ErrInvalidEntity if the referenced
	// user does not exist, or validation errors from the domain DataPulse.
	Create(ctx context.Context, pulse *domain.DataPulse) error

	// ListByUser retrieves a user's pulses newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.DataPulse, error)
}
