package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
)

// KnowledgeProfileStore defines the interface for mastery-record persistence.
// There is at most one profile per (user, category) pair; ApplyCounts must be
// an atomic update-or-create so concurrent submissions from the same user
// (e.g. two browser tabs) can never produce duplicate rows.
type KnowledgeProfileStore interface {
	// Get retrieves a profile by the (user, category) key.
	// Returns ErrProfileNotFound if no profile exists.
	Get(ctx context.Context, userID, categoryID uuid.UUID) (*domain.KnowledgeProfile, error)

	// ListWeakest returns up to limit categories for the user ordered
	// weakest first: categories with profiles come first ordered by mastery
	// ascending, then categories the user has never seen (mastery 0) in
	// seed order, so the result is deterministic across runs. If section is
	// non-empty only that exam section is considered. Read-only.
	ListWeakest(
		ctx context.Context,
		userID uuid.UUID,
		section domain.Section,
		limit int,
	) ([]domain.CategoryMastery, error)

	// ApplyCounts folds positive/negative attempt counts into the profile
	// for the (user, category) key, creating the profile if it does not
	// exist. The increment must be a single atomic upsert. Returns the
	// profile with updated counters; the mastery score is not revised here.
	ApplyCounts(
		ctx context.Context,
		userID, categoryID uuid.UUID,
		positive, negative int,
	) (*domain.KnowledgeProfile, error)

	// SetMastery stores a revised mastery score for the (user, category) key.
	// Returns ErrProfileNotFound if no profile exists.
	SetMastery(ctx context.Context, userID, categoryID uuid.UUID, mastery float64) error

	// MarkCompleted flags the profile as completed and stamps the time.
	// Returns ErrProfileNotFound if no profile exists.
	MarkCompleted(ctx context.Context, userID, categoryID uuid.UUID) error

	// DeleteForUser removes all of a user's profiles. Only used on explicit
	// account-data reset. Returns the number of rows removed.
	DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) KnowledgeProfileStore
}
