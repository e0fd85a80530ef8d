package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/domain/mastery"
	"github.com/premedly/studyplan-api/internal/store"
)

// MasteryService provides mastery aggregation and revision operations.
type MasteryService interface {
	// GetWeakestCategories returns up to pageSize categories for the user
	// ordered weakest first, optionally scoped to one exam section. Unseen
	// categories backfill the result at mastery 0 so a new user still gets a
	// full ranking. Read-only.
	GetWeakestCategories(
		ctx context.Context,
		userID uuid.UUID,
		section domain.Section,
		pageSize int,
	) ([]domain.CategoryMastery, error)

	// FoldCounts folds positive/negative attempt counts into the user's
	// knowledge profile for a category and recomputes the mastery score
	// using the configured strategy, atomically.
	FoldCounts(ctx context.Context, userID, categoryID uuid.UUID, positive, negative int) error

	// MarkCategoryCompleted flags the user's profile for a category as
	// completed (e.g. finished the content review flow).
	MarkCategoryCompleted(ctx context.Context, userID, categoryID uuid.UUID) error
}

// MasteryServiceError wraps errors from the mastery service with context.
type MasteryServiceError struct {
	// Operation is the operation that failed (e.g., "fold_counts")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for MasteryServiceError.
func (e *MasteryServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mastery service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("mastery service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MasteryServiceError) Unwrap() error {
	return e.Err
}

// NewMasteryServiceError creates a new MasteryServiceError.
// It returns known sentinel errors directly without wrapping.
func NewMasteryServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrCategoryNotFound) || errors.Is(err, store.ErrCategoryNotFound) {
		return ErrCategoryNotFound
	}

	return &MasteryServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// masteryServiceImpl implements the MasteryService interface
type masteryServiceImpl struct {
	db           *sql.DB
	profileStore store.KnowledgeProfileStore
	strategy     mastery.Strategy
	logger       *slog.Logger
}

// NewMasteryService creates a new MasteryService. A nil strategy falls back
// to the default ratio strategy.
func NewMasteryService(
	db *sql.DB,
	profileStore store.KnowledgeProfileStore,
	strategy mastery.Strategy,
	logger *slog.Logger,
) (MasteryService, error) {
	if db == nil {
		return nil, &MasteryServiceError{
			Operation: "create_service",
			Message:   "db cannot be nil",
		}
	}
	if profileStore == nil {
		return nil, &MasteryServiceError{
			Operation: "create_service",
			Message:   "profileStore cannot be nil",
		}
	}
	if strategy == nil {
		strategy = mastery.NewDefaultStrategy()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &masteryServiceImpl{
		db:           db,
		profileStore: profileStore,
		strategy:     strategy,
		logger:       logger.With("component", "mastery_service"),
	}, nil
}

// GetWeakestCategories returns the user's weakest categories, weakest first.
func (s *masteryServiceImpl) GetWeakestCategories(
	ctx context.Context,
	userID uuid.UUID,
	section domain.Section,
	pageSize int,
) ([]domain.CategoryMastery, error) {
	if section != "" && !domain.ValidSection(section) {
		return nil, domain.ErrInvalidSection
	}

	results, err := s.profileStore.ListWeakest(ctx, userID, section, pageSize)
	if err != nil {
		s.logger.Error("failed to list weakest categories",
			"error", err,
			"user_id", userID,
			"section", section)
		return nil, NewMasteryServiceError(
			"get_weakest_categories",
			"failed to rank categories",
			err,
		)
	}

	s.logger.Debug("ranked weakest categories",
		"user_id", userID,
		"section", section,
		"count", len(results))
	return results, nil
}

// FoldCounts increments the profile's counters and recomputes mastery in one
// transaction. The upsert and the score revision must land together or not
// at all; a counter bump without a score revision would leave the ranking
// stale until the next fold.
func (s *masteryServiceImpl) FoldCounts(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	positive, negative int,
) error {
	if positive < 0 || negative < 0 {
		return domain.ErrInvalidCounts
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.profileStore.WithTx(tx)

		profile, err := txStore.ApplyCounts(ctx, userID, categoryID, positive, negative)
		if err != nil {
			s.logger.Error("failed to apply counts",
				"error", err,
				"user_id", userID,
				"category_id", categoryID)
			return NewMasteryServiceError("fold_counts", "failed to apply counts", err)
		}

		newMastery := s.strategy.UpdateMastery(profile, positive, negative)
		if newMastery < 0 {
			// The strategy contract forbids negative scores; clamp rather
			// than poison the ranking.
			s.logger.Warn("mastery strategy returned negative score, clamping to 0",
				"user_id", userID,
				"category_id", categoryID,
				"score", newMastery)
			newMastery = 0
		}

		if err := txStore.SetMastery(ctx, userID, categoryID, newMastery); err != nil {
			s.logger.Error("failed to set mastery",
				"error", err,
				"user_id", userID,
				"category_id", categoryID)
			return NewMasteryServiceError("fold_counts", "failed to revise mastery", err)
		}

		s.logger.Debug("folded counts into knowledge profile",
			"user_id", userID,
			"category_id", categoryID,
			"positive", positive,
			"negative", negative,
			"mastery", newMastery)
		return nil
	})
}

// MarkCategoryCompleted flags the profile as completed.
func (s *masteryServiceImpl) MarkCategoryCompleted(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) error {
	err := s.profileStore.MarkCompleted(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return ErrCategoryNotFound
		}
		s.logger.Error("failed to mark category completed",
			"error", err,
			"user_id", userID,
			"category_id", categoryID)
		return NewMasteryServiceError(
			"mark_category_completed",
			"failed to mark profile completed",
			err,
		)
	}
	return nil
}
