// Package mastery defines the injectable strategy that revises a knowledge
// profile's mastery score from accumulated practice counts. The exact curve
// is a product decision that has changed before; the engine only requires
// that a strategy be monotonic in the correct-answer ratio and never return
// a negative score.
package mastery

import "github.com/premedly/studyplan-api/internal/domain"

// Strategy computes a profile's revised mastery score after positive/negative
// counts have been folded into its counters. Implementations must be
// deterministic, monotonic in correct ratio, and non-negative.
type Strategy interface {
	// UpdateMastery returns the new mastery score for a profile whose
	// CorrectCount/TotalCount already include the given counts.
	UpdateMastery(profile *domain.KnowledgeProfile, positive, negative int) float64
}

// RatioStrategy scores mastery as a Laplace-smoothed correct ratio scaled to
// [0, Scale). Smoothing keeps a single lucky answer from reading as full
// mastery and guarantees a strictly positive denominator.
type RatioStrategy struct {
	Scale float64
}

// NewDefaultStrategy returns the ratio strategy scaled to 0..100.
func NewDefaultStrategy() Strategy {
	return &RatioStrategy{Scale: 100}
}

// UpdateMastery implements Strategy.
func (s *RatioStrategy) UpdateMastery(
	profile *domain.KnowledgeProfile,
	positive, negative int,
) float64 {
	correct := profile.CorrectCount
	total := profile.TotalCount
	if correct < 0 {
		correct = 0
	}
	if total < correct {
		total = correct
	}

	return s.Scale * float64(correct+1) / float64(total+2)
}
