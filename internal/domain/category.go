package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Section identifies one of the four MCAT exam sections.
type Section string

// Known exam sections.
const (
	SectionChemPhys   Section = "chem_phys"
	SectionCARS       Section = "cars"
	SectionBioBiochem Section = "bio_biochem"
	SectionPsychSoc   Section = "psych_soc"
)

// ValidSection reports whether s is one of the four exam sections.
func ValidSection(s Section) bool {
	switch s {
	case SectionChemPhys, SectionCARS, SectionBioBiochem, SectionPsychSoc:
		return true
	}
	return false
}

// Common validation errors for Category.
var (
	ErrEmptyCategorySubject = errors.New("category subject cannot be empty")
	ErrEmptyCategoryConcept = errors.New("category concept cannot be empty")
	ErrInvalidCategoryWeight = errors.New(
		"category general weight must be greater than 0",
	)
)

// Category is one node of the topic taxonomy. Categories are seeded once
// from reference data and are read-mostly afterward. Concept names are
// unique within a (subject, content) pairing; Position records the seed
// insertion order and is the deterministic tie-breaker for rankings.
type Category struct {
	ID              uuid.UUID `json:"id"`
	Subject         string    `json:"subject"`
	ContentCategory string    `json:"content_category"`
	ConceptCategory string    `json:"concept_category"`
	Section         Section   `json:"section"`
	GeneralWeight   float64   `json:"general_weight"`
	Position        int       `json:"position"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewCategory creates a new taxonomy node with a generated ID.
func NewCategory(
	subject, contentCategory, conceptCategory string,
	section Section,
	generalWeight float64,
	position int,
) (*Category, error) {
	category := &Category{
		ID:              uuid.New(),
		Subject:         subject,
		ContentCategory: contentCategory,
		ConceptCategory: conceptCategory,
		Section:         section,
		GeneralWeight:   generalWeight,
		Position:        position,
		CreatedAt:       time.Now().UTC(),
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidID
	}
	if c.Subject == "" {
		return ErrEmptyCategorySubject
	}
	if c.ConceptCategory == "" {
		return ErrEmptyCategoryConcept
	}
	if !ValidSection(c.Section) {
		return ErrInvalidSection
	}
	if c.GeneralWeight <= 0 {
		return ErrInvalidCategoryWeight
	}
	return nil
}

// CategoryMastery pairs a category with the caller's current mastery.
// Mastery defaults to 0 for categories the user has no profile for yet.
type CategoryMastery struct {
	CategoryID uuid.UUID `json:"category_id"`
	Concept    string    `json:"concept"`
	Mastery    float64   `json:"mastery"`
	Seen       bool      `json:"seen"`
}
