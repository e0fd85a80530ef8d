package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
)

// CategoryStore defines the interface for taxonomy persistence. Categories
// are seeded once and read-mostly afterward.
type CategoryStore interface {
	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// GetByConcept retrieves a category by its concept name. Concept names
	// are unique within a (subject, content) pairing; the seeded reference
	// taxonomy keeps them globally unique so external subject labels can be
	// resolved by concept alone.
	// Returns ErrCategoryNotFound if no category matches.
	GetByConcept(ctx context.Context, concept string) (*domain.Category, error)

	// List retrieves categories ordered by seed position. If section is
	// non-empty only categories in that section are returned.
	List(ctx context.Context, section domain.Section) ([]*domain.Category, error)
}
