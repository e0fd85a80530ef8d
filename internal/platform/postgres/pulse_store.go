package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/platform/logger"
	"github.com/premedly/studyplan-api/internal/store"
)

// PostgresPulseStore implements the store.DataPulseStore interface using a
// PostgreSQL database as the storage backend. Pulses are append-only so the
// store has no update or delete path.
type PostgresPulseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPulseStore creates a new PostgreSQL implementation of the
// DataPulseStore interface. If logger is nil, a default logger will be used.
func NewPostgresPulseStore(db store.DBTX, logger *slog.Logger) *PostgresPulseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPulseStore{
		db:     db,
		logger: logger.With(slog.String("component", "pulse_store")),
	}
}

// Ensure PostgresPulseStore implements store.DataPulseStore interface
var _ store.DataPulseStore = (*PostgresPulseStore)(nil)

const pulseColumns = `id, user_id, name, level, source, weight, positive, negative, notes, created_at`

// Create implements store.DataPulseStore.Create
func (s *PostgresPulseStore) Create(ctx context.Context, pulse *domain.DataPulse) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := pulse.Validate(); err != nil {
		log.Warn("pulse validation failed during creation",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO data_pulses (` + pulseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		pulse.ID,
		pulse.UserID,
		pulse.Name,
		pulse.Level,
		pulse.Source,
		pulse.Weight,
		pulse.Positive,
		pulse.Negative,
		pulse.Notes,
		pulse.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during pulse creation",
				slog.String("error", err.Error()),
				slog.String("user_id", pulse.UserID.String()))
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, pulse.UserID)
		}
		log.Error("failed to create data pulse",
			slog.String("error", err.Error()),
			slog.String("pulse_id", pulse.ID.String()))
		return err
	}

	log.Debug("data pulse created",
		slog.String("pulse_id", pulse.ID.String()),
		slog.String("user_id", pulse.UserID.String()),
		slog.String("name", pulse.Name))
	return nil
}

// ListByUser implements store.DataPulseStore.ListByUser
func (s *PostgresPulseStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.DataPulse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + pulseColumns + `
		FROM data_pulses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to list data pulses",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var pulses []*domain.DataPulse
	for rows.Next() {
		var pulse domain.DataPulse
		var level string
		err := rows.Scan(
			&pulse.ID,
			&pulse.UserID,
			&pulse.Name,
			&level,
			&pulse.Source,
			&pulse.Weight,
			&pulse.Positive,
			&pulse.Negative,
			&pulse.Notes,
			&pulse.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan pulse row", slog.String("error", err.Error()))
			return nil, err
		}
		pulse.Level = domain.PulseLevel(level)
		pulses = append(pulses, &pulse)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if pulses == nil {
		pulses = []*domain.DataPulse{}
	}

	return pulses, nil
}
