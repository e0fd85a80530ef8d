package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
)

// StudyPlanStore defines the interface for study-plan persistence. A user
// has at most one plan; creation and supersession run inside the scheduler
// service's transaction.
type StudyPlanStore interface {
	// Create saves a new plan. Returns ErrPlanExists if the user already has
	// one (the service deletes the prior plan first when superseding).
	Create(ctx context.Context, plan *domain.StudyPlan) error

	// GetByUser retrieves the user's active plan.
	// Returns ErrPlanNotFound if none exists.
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.StudyPlan, error)

	// DeleteByUser removes the user's plan. Activity rows are removed by the
	// database's ON DELETE CASCADE on the plan foreign key; callers needing
	// the activity count delete activities explicitly first in the same
	// transaction. Returns the number of plans removed (0 or 1).
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) StudyPlanStore
}
