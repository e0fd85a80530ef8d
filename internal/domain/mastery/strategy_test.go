package mastery

import (
	"math"
	"testing"

	"github.com/premedly/studyplan-api/internal/domain"
)

func profileWithCounts(correct, total int) *domain.KnowledgeProfile {
	return &domain.KnowledgeProfile{
		CorrectCount: correct,
		TotalCount:   total,
	}
}

func TestRatioStrategyUpdateMastery(t *testing.T) {
	t.Parallel()
	strategy := &RatioStrategy{Scale: 100}

	testCases := []struct {
		name     string
		correct  int
		total    int
		expected float64
	}{
		{
			name:     "no evidence sits at the smoothed midpoint",
			correct:  0,
			total:    0,
			expected: 50.0, // 100 * 1/2
		},
		{
			name:     "single correct answer is not full mastery",
			correct:  1,
			total:    1,
			expected: 100.0 * 2.0 / 3.0,
		},
		{
			name:     "single wrong answer is not zero mastery",
			correct:  0,
			total:    1,
			expected: 100.0 / 3.0,
		},
		{
			name:     "large sample approaches the raw ratio",
			correct:  80,
			total:    100,
			expected: 100.0 * 81.0 / 102.0,
		},
		{
			name:     "negative counters are clamped",
			correct:  -5,
			total:    -5,
			expected: 50.0,
		},
		{
			name:     "total below correct is clamped up",
			correct:  10,
			total:    3,
			expected: 100.0 * 11.0 / 12.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := strategy.UpdateMastery(profileWithCounts(tc.correct, tc.total), 0, 0)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Expected mastery %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestRatioStrategyMonotonic(t *testing.T) {
	t.Parallel()
	strategy := NewDefaultStrategy()

	// With a fixed total, more correct answers must never lower the score.
	prev := -1.0
	for correct := 0; correct <= 50; correct++ {
		got := strategy.UpdateMastery(profileWithCounts(correct, 50), 0, 0)
		if got < prev {
			t.Fatalf("Mastery decreased from %v to %v at correct=%d", prev, got, correct)
		}
		if got < 0 {
			t.Fatalf("Mastery went negative: %v at correct=%d", got, correct)
		}
		prev = got
	}
}

func TestRatioStrategyBounded(t *testing.T) {
	t.Parallel()
	strategy := NewDefaultStrategy()

	// Smoothing keeps scores strictly inside (0, 100).
	perfect := strategy.UpdateMastery(profileWithCounts(1000, 1000), 0, 0)
	if perfect >= 100 {
		t.Errorf("Expected perfect record below 100, got %v", perfect)
	}
	hopeless := strategy.UpdateMastery(profileWithCounts(0, 1000), 0, 0)
	if hopeless <= 0 {
		t.Errorf("Expected hopeless record above 0, got %v", hopeless)
	}
}
