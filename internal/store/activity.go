package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
)

// CalendarActivityStore defines the interface for scheduled-activity
// persistence. Bulk operations (batch create, future-scope replacement,
// plan reset) are single statements so they stay atomic inside the service's
// transaction; per-row loops would expose partial failure to the caller.
type CalendarActivityStore interface {
	// CreateBatch inserts all activities in one statement.
	// MUST be run within a transaction via WithTx and RunInTransaction.
	CreateBatch(ctx context.Context, activities []*domain.CalendarActivity) error

	// GetByID retrieves an activity by its unique ID.
	// Returns ErrActivityNotFound if the activity does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarActivity, error)

	// ListByPlan retrieves a plan's activities ordered by scheduled date.
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]*domain.CalendarActivity, error)

	// UpdateStatus moves a pending activity to a terminal status.
	// Returns ErrActivityNotFound if no pending activity matches, which
	// callers distinguish from a state conflict by fetching first.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ActivityStatus) error

	// Replace rewrites a single pending activity's type, title, and hours.
	// Returns the number of rows changed (0 when the activity is missing or
	// no longer pending).
	Replace(
		ctx context.Context,
		id uuid.UUID,
		newType domain.ActivityType,
		title string,
		hours float64,
	) (int64, error)

	// ReplaceFuture rewrites every pending activity of the given type in the
	// plan scheduled on or after the pivot date, as one statement. Returns
	// the number of rows changed.
	ReplaceFuture(
		ctx context.Context,
		planID uuid.UUID,
		activityType domain.ActivityType,
		from time.Time,
		newType domain.ActivityType,
		title string,
		hours float64,
	) (int64, error)

	// DeleteByPlan removes all of a plan's activities in one statement.
	// Returns the number of rows removed.
	DeleteByPlan(ctx context.Context, planID uuid.UUID) (int64, error)

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) CalendarActivityStore
}
