package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/platform/logger"
	"github.com/premedly/studyplan-api/internal/store"
)

// PostgresPlanStore implements the store.StudyPlanStore interface using a
// PostgreSQL database as the storage backend.
type PostgresPlanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPlanStore creates a new PostgreSQL implementation of the
// StudyPlanStore interface. If logger is nil, a default logger will be used.
func NewPostgresPlanStore(db store.DBTX, logger *slog.Logger) *PostgresPlanStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPlanStore{
		db:     db,
		logger: logger.With(slog.String("component", "plan_store")),
	}
}

// Ensure PostgresPlanStore implements store.StudyPlanStore interface
var _ store.StudyPlanStore = (*PostgresPlanStore)(nil)

// WithTx implements store.StudyPlanStore.WithTx
func (s *PostgresPlanStore) WithTx(tx *sql.Tx) store.StudyPlanStore {
	return &PostgresPlanStore{db: tx, logger: s.logger}
}

// Create implements store.StudyPlanStore.Create
func (s *PostgresPlanStore) Create(ctx context.Context, plan *domain.StudyPlan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := plan.Validate(); err != nil {
		log.Warn("plan validation failed during creation",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO study_plans (id, user_id, exam_date, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, query, plan.ID, plan.UserID, plan.ExamDate, plan.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("user already has a study plan",
				slog.String("user_id", plan.UserID.String()))
			return store.ErrPlanExists
		}
		log.Error("failed to create study plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
		return err
	}

	log.Info("study plan created",
		slog.String("plan_id", plan.ID.String()),
		slog.String("user_id", plan.UserID.String()),
		slog.Time("exam_date", plan.ExamDate))
	return nil
}

// GetByUser implements store.StudyPlanStore.GetByUser
func (s *PostgresPlanStore) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.StudyPlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, exam_date, created_at
		FROM study_plans
		WHERE user_id = $1
	`

	var plan domain.StudyPlan
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&plan.ID,
		&plan.UserID,
		&plan.ExamDate,
		&plan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study plan not found", slog.String("user_id", userID.String()))
			return nil, store.ErrPlanNotFound
		}
		log.Error("failed to get study plan",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return &plan, nil
}

// DeleteByUser implements store.StudyPlanStore.DeleteByUser
func (s *PostgresPlanStore) DeleteByUser(
	ctx context.Context,
	userID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM study_plans WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		log.Error("failed to delete study plan",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return 0, err
	}

	if rowsAffected > 0 {
		log.Info("study plan deleted",
			slog.String("user_id", userID.String()),
			slog.Int64("count", rowsAffected))
	}
	return rowsAffected, nil
}
