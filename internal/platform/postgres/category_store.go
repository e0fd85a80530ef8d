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

// PostgresCategoryStore implements the store.CategoryStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface. If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

const categoryColumns = `id, subject, content_category, concept_category, section, general_weight, position, created_at`

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1
	`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.String("category_id", id.String()))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by ID",
			slog.String("error", err.Error()),
			slog.String("category_id", id.String()))
		return nil, err
	}

	return category, nil
}

// GetByConcept implements store.CategoryStore.GetByConcept
func (s *PostgresCategoryStore) GetByConcept(
	ctx context.Context,
	concept string,
) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE concept_category = $1
	`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, concept))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found by concept", slog.String("concept", concept))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by concept",
			slog.String("error", err.Error()),
			slog.String("concept", concept))
		return nil, err
	}

	return category, nil
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(
	ctx context.Context,
	section domain.Section,
) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
	`
	var args []interface{}
	if section != "" {
		query += ` WHERE section = $1`
		args = append(args, section)
	}
	query += ` ORDER BY position ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list categories",
			slog.String("error", err.Error()),
			slog.String("section", string(section)))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			log.Error("failed to scan category row",
				slog.String("error", err.Error()))
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if categories == nil {
		categories = []*domain.Category{}
	}

	return categories, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan code.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
	var section string

	err := row.Scan(
		&category.ID,
		&category.Subject,
		&category.ContentCategory,
		&category.ConceptCategory,
		&section,
		&category.GeneralWeight,
		&category.Position,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	category.Section = domain.Section(section)
	return &category, nil
}
