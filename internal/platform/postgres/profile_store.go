package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/platform/logger"
	"github.com/premedly/studyplan-api/internal/store"
)

// PostgresProfileStore implements the store.KnowledgeProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// KnowledgeProfileStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.KnowledgeProfileStore interface
var _ store.KnowledgeProfileStore = (*PostgresProfileStore)(nil)

const profileColumns = `id, user_id, category_id, mastery, correct_count, total_count, completed, completed_at, created_at, updated_at`

// WithTx implements store.KnowledgeProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.KnowledgeProfileStore {
	return &PostgresProfileStore{db: tx, logger: s.logger}
}

// Get implements store.KnowledgeProfileStore.Get
func (s *PostgresProfileStore) Get(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) (*domain.KnowledgeProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + profileColumns + `
		FROM knowledge_profiles
		WHERE user_id = $1 AND category_id = $2
	`

	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, userID, categoryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("knowledge profile not found",
				slog.String("user_id", userID.String()),
				slog.String("category_id", categoryID.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get knowledge profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("category_id", categoryID.String()))
		return nil, err
	}

	return profile, nil
}

// ListWeakest implements store.KnowledgeProfileStore.ListWeakest
// Seen categories come first ordered by mastery ascending; unseen categories
// backfill in seed order so the result always has limit entries when that
// many categories exist.
func (s *PostgresProfileStore) ListWeakest(
	ctx context.Context,
	userID uuid.UUID,
	section domain.Section,
	limit int,
) ([]domain.CategoryMastery, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT c.id, c.concept_category, COALESCE(p.mastery, 0), (p.id IS NOT NULL) AS seen
		FROM categories c
		LEFT JOIN knowledge_profiles p
			ON p.category_id = c.id AND p.user_id = $1
	`
	args := []interface{}{userID}
	if section != "" {
		query += ` WHERE c.section = $2`
		args = append(args, section)
	}
	query += fmt.Sprintf(`
		ORDER BY (p.id IS NULL) ASC, p.mastery ASC, c.position ASC
		LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query weakest categories",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var results []domain.CategoryMastery
	for rows.Next() {
		var cm domain.CategoryMastery
		if err := rows.Scan(&cm.CategoryID, &cm.Concept, &cm.Mastery, &cm.Seen); err != nil {
			log.Error("failed to scan weakest category row",
				slog.String("error", err.Error()))
			return nil, err
		}
		results = append(results, cm)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if results == nil {
		results = []domain.CategoryMastery{}
	}

	return results, nil
}

// ApplyCounts implements store.KnowledgeProfileStore.ApplyCounts
// The upsert is a single INSERT ... ON CONFLICT so concurrent submissions
// for the same (user, category) pair can never create duplicate rows.
func (s *PostgresProfileStore) ApplyCounts(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	positive, negative int,
) (*domain.KnowledgeProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if positive < 0 || negative < 0 {
		return nil, fmt.Errorf("%w: counts cannot be negative", store.ErrInvalidEntity)
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO knowledge_profiles
			(id, user_id, category_id, mastery, correct_count, total_count, completed, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5, FALSE, $6, $6)
		ON CONFLICT (user_id, category_id) DO UPDATE SET
			correct_count = knowledge_profiles.correct_count + EXCLUDED.correct_count,
			total_count   = knowledge_profiles.total_count + EXCLUDED.total_count,
			updated_at    = EXCLUDED.updated_at
		RETURNING ` + profileColumns + `
	`

	profile, err := scanProfile(s.db.QueryRowContext(
		ctx,
		query,
		uuid.New(),
		userID,
		categoryID,
		positive,
		positive+negative,
		now,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during profile upsert",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()),
				slog.String("category_id", categoryID.String()))
			return nil, fmt.Errorf("%w: category %s not found",
				store.ErrInvalidEntity, categoryID)
		}
		log.Error("failed to upsert knowledge profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("category_id", categoryID.String()))
		return nil, err
	}

	log.Debug("applied counts to knowledge profile",
		slog.String("user_id", userID.String()),
		slog.String("category_id", categoryID.String()),
		slog.Int("positive", positive),
		slog.Int("negative", negative))
	return profile, nil
}

// SetMastery implements store.KnowledgeProfileStore.SetMastery
func (s *PostgresProfileStore) SetMastery(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	masteryScore float64,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if masteryScore < 0 {
		return fmt.Errorf("%w: mastery cannot be negative", store.ErrInvalidEntity)
	}

	query := `
		UPDATE knowledge_profiles
		SET mastery = $1, updated_at = $2
		WHERE user_id = $3 AND category_id = $4
	`

	result, err := s.db.ExecContext(ctx, query, masteryScore, time.Now().UTC(), userID, categoryID)
	if err != nil {
		log.Error("failed to set mastery",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("category_id", categoryID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrProfileNotFound
	}

	return nil
}

// MarkCompleted implements store.KnowledgeProfileStore.MarkCompleted
func (s *PostgresProfileStore) MarkCompleted(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()

	query := `
		UPDATE knowledge_profiles
		SET completed = TRUE, completed_at = $1, updated_at = $1
		WHERE user_id = $2 AND category_id = $3
	`

	result, err := s.db.ExecContext(ctx, query, now, userID, categoryID)
	if err != nil {
		log.Error("failed to mark profile completed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("category_id", categoryID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrProfileNotFound
	}

	log.Info("knowledge profile marked completed",
		slog.String("user_id", userID.String()),
		slog.String("category_id", categoryID.String()))
	return nil
}

// DeleteForUser implements store.KnowledgeProfileStore.DeleteForUser
func (s *PostgresProfileStore) DeleteForUser(
	ctx context.Context,
	userID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM knowledge_profiles WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		log.Error("failed to delete profiles for user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("deleted knowledge profiles for user",
		slog.String("user_id", userID.String()),
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

func scanProfile(row rowScanner) (*domain.KnowledgeProfile, error) {
	var profile domain.KnowledgeProfile
	var completedAt sql.NullTime

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CategoryID,
		&profile.Mastery,
		&profile.CorrectCount,
		&profile.TotalCount,
		&profile.Completed,
		&completedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		profile.CompletedAt = &t
	}
	return &profile, nil
}
