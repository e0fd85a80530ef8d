package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/platform/logger"
	"github.com/premedly/studyplan-api/internal/store"
)

// PostgresActivityStore implements the store.CalendarActivityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresActivityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresActivityStore creates a new PostgreSQL implementation of the
// CalendarActivityStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresActivityStore(db store.DBTX, logger *slog.Logger) *PostgresActivityStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresActivityStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_store")),
	}
}

// Ensure PostgresActivityStore implements store.CalendarActivityStore interface
var _ store.CalendarActivityStore = (*PostgresActivityStore)(nil)

const activityColumns = `id, user_id, plan_id, scheduled_date, title, hours, type, status, full_length_number, created_at, updated_at`

// WithTx implements store.CalendarActivityStore.WithTx
func (s *PostgresActivityStore) WithTx(tx *sql.Tx) store.CalendarActivityStore {
	return &PostgresActivityStore{db: tx, logger: s.logger}
}

// CreateBatch implements store.CalendarActivityStore.CreateBatch
// A generated plan is a few dozen to a few hundred rows, small enough for a
// single multi-row INSERT.
func (s *PostgresActivityStore) CreateBatch(
	ctx context.Context,
	activities []*domain.CalendarActivity,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(activities) == 0 {
		return nil
	}

	for _, activity := range activities {
		if err := activity.Validate(); err != nil {
			log.Warn("activity validation failed during batch creation",
				slog.String("error", err.Error()),
				slog.String("activity_id", activity.ID.String()))
			return err
		}
	}

	const fieldsPerRow = 11
	placeholders := make([]string, 0, len(activities))
	args := make([]interface{}, 0, len(activities)*fieldsPerRow)
	for i, activity := range activities {
		base := i * fieldsPerRow
		row := make([]string, fieldsPerRow)
		for j := range row {
			row[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(row, ", ")+")")

		var fullLengthNumber sql.NullInt64
		if activity.FullLengthNumber != nil {
			fullLengthNumber = sql.NullInt64{Int64: int64(*activity.FullLengthNumber), Valid: true}
		}

		args = append(args,
			activity.ID,
			activity.UserID,
			activity.PlanID,
			activity.ScheduledDate,
			activity.Title,
			activity.Hours,
			activity.Type,
			activity.Status,
			fullLengthNumber,
			activity.CreatedAt,
			activity.UpdatedAt,
		)
	}

	query := `
		INSERT INTO calendar_activities (` + activityColumns + `)
		VALUES ` + strings.Join(placeholders, ", ")

	_, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during activity batch creation",
				slog.String("error", err.Error()))
			return fmt.Errorf("%w: referenced plan not found", store.ErrInvalidEntity)
		}
		log.Error("failed to batch create activities",
			slog.String("error", err.Error()),
			slog.Int("count", len(activities)))
		return err
	}

	log.Info("calendar activities created",
		slog.Int("count", len(activities)),
		slog.String("plan_id", activities[0].PlanID.String()))
	return nil
}

// GetByID implements store.CalendarActivityStore.GetByID
func (s *PostgresActivityStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.CalendarActivity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + activityColumns + `
		FROM calendar_activities
		WHERE id = $1
	`

	activity, err := scanActivity(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("activity not found", slog.String("activity_id", id.String()))
			return nil, store.ErrActivityNotFound
		}
		log.Error("failed to get activity by ID",
			slog.String("error", err.Error()),
			slog.String("activity_id", id.String()))
		return nil, err
	}

	return activity, nil
}

// ListByPlan implements store.CalendarActivityStore.ListByPlan
func (s *PostgresActivityStore) ListByPlan(
	ctx context.Context,
	planID uuid.UUID,
) ([]*domain.CalendarActivity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + activityColumns + `
		FROM calendar_activities
		WHERE plan_id = $1
		ORDER BY scheduled_date ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, planID)
	if err != nil {
		log.Error("failed to list activities",
			slog.String("error", err.Error()),
			slog.String("plan_id", planID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var activities []*domain.CalendarActivity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			log.Error("failed to scan activity row", slog.String("error", err.Error()))
			return nil, err
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if activities == nil {
		activities = []*domain.CalendarActivity{}
	}

	return activities, nil
}

// UpdateStatus implements store.CalendarActivityStore.UpdateStatus
func (s *PostgresActivityStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ActivityStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.ValidActivityStatus(status) {
		return fmt.Errorf("%w: unknown status %q", store.ErrInvalidEntity, status)
	}

	query := `
		UPDATE calendar_activities
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`

	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id, domain.ActivityStatusPending)
	if err != nil {
		log.Error("failed to update activity status",
			slog.String("error", err.Error()),
			slog.String("activity_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrActivityNotFound
	}

	log.Debug("activity status updated",
		slog.String("activity_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// Replace implements store.CalendarActivityStore.Replace
func (s *PostgresActivityStore) Replace(
	ctx context.Context,
	id uuid.UUID,
	newType domain.ActivityType,
	title string,
	hours float64,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE calendar_activities
		SET type = $1, title = $2, hours = $3, updated_at = $4
		WHERE id = $5 AND status = $6
	`

	result, err := s.db.ExecContext(
		ctx, query, newType, title, hours, time.Now().UTC(), id, domain.ActivityStatusPending,
	)
	if err != nil {
		log.Error("failed to replace activity",
			slog.String("error", err.Error()),
			slog.String("activity_id", id.String()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return 0, err
	}

	return rowsAffected, nil
}

// ReplaceFuture implements store.CalendarActivityStore.ReplaceFuture
func (s *PostgresActivityStore) ReplaceFuture(
	ctx context.Context,
	planID uuid.UUID,
	activityType domain.ActivityType,
	from time.Time,
	newType domain.ActivityType,
	title string,
	hours float64,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE calendar_activities
		SET type = $1, title = $2, hours = $3, updated_at = $4
		WHERE plan_id = $5
			AND type = $6
			AND scheduled_date >= $7
			AND status = $8
	`

	result, err := s.db.ExecContext(
		ctx, query,
		newType, title, hours, time.Now().UTC(),
		planID, activityType, from, domain.ActivityStatusPending,
	)
	if err != nil {
		log.Error("failed to replace future activities",
			slog.String("error", err.Error()),
			slog.String("plan_id", planID.String()),
			slog.String("type", string(activityType)))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("future activities replaced",
		slog.String("plan_id", planID.String()),
		slog.String("from_type", string(activityType)),
		slog.String("to_type", string(newType)),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

// DeleteByPlan implements store.CalendarActivityStore.DeleteByPlan
func (s *PostgresActivityStore) DeleteByPlan(
	ctx context.Context,
	planID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM calendar_activities WHERE plan_id = $1`,
		planID,
	)
	if err != nil {
		log.Error("failed to delete activities for plan",
			slog.String("error", err.Error()),
			slog.String("plan_id", planID.String()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("activities deleted for plan",
		slog.String("plan_id", planID.String()),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

func scanActivity(row rowScanner) (*domain.CalendarActivity, error) {
	var activity domain.CalendarActivity
	var activityType, status string
	var fullLengthNumber sql.NullInt64

	err := row.Scan(
		&activity.ID,
		&activity.UserID,
		&activity.PlanID,
		&activity.ScheduledDate,
		&activity.Title,
		&activity.Hours,
		&activityType,
		&status,
		&fullLengthNumber,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	activity.Type = domain.ActivityType(activityType)
	activity.Status = domain.ActivityStatus(status)
	if fullLengthNumber.Valid {
		n := int(fullLengthNumber.Int64)
		activity.FullLengthNumber = &n
	}
	return &activity, nil
}
