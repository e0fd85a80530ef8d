package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for KnowledgeProfile.
var (
	ErrEmptyProfileUserID     = errors.New("knowledge profile user ID cannot be empty")
	ErrEmptyProfileCategoryID = errors.New("knowledge profile category ID cannot be empty")
	ErrNegativeMastery        = errors.New("mastery score cannot be negative")
)

// KnowledgeProfile tracks a user's mastery of a single category. There is at
// most one profile per (user, category) pair; stores must upsert on that key.
// Mastery is revised whenever practice evidence for the category is folded in.
type KnowledgeProfile struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	CategoryID   uuid.UUID  `json:"category_id"`
	Mastery      float64    `json:"mastery"`
	CorrectCount int        `json:"correct_count"`
	TotalCount   int        `json:"total_count"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewKnowledgeProfile creates a fresh profile for a user and category with
// zeroed counters, representing an unseen topic.
func NewKnowledgeProfile(userID, categoryID uuid.UUID) (*KnowledgeProfile, error) {
	now := time.Now().UTC()
	profile := &KnowledgeProfile{
		ID:           uuid.New(),
		UserID:       userID,
		CategoryID:   categoryID,
		Mastery:      0,
		CorrectCount: 0,
		TotalCount:   0,
		Completed:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the KnowledgeProfile has valid data.
func (p *KnowledgeProfile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	if p.CategoryID == uuid.Nil {
		return ErrEmptyProfileCategoryID
	}
	if p.Mastery < 0 {
		return ErrNegativeMastery
	}
	if p.CorrectCount < 0 || p.TotalCount < 0 || p.CorrectCount > p.TotalCount {
		return ErrInvalidCounts
	}
	return nil
}
