package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for StudyPlan.
var (
	ErrEmptyPlanUserID = errors.New("study plan user ID cannot be empty")
	ErrZeroExamDate    = errors.New("study plan exam date cannot be zero")
)

// StudyPlan is the date-bounded container for a user's scheduled activities
// leading up to an exam date. A user has at most one active plan; creating a
// new plan supersedes and deletes the prior one.
type StudyPlan struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ExamDate  time.Time `json:"exam_date"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStudyPlan creates a new plan starting today (UTC, day precision) and
// ending on examDate inclusive.
func NewStudyPlan(userID uuid.UUID, examDate time.Time) (*StudyPlan, error) {
	plan := &StudyPlan{
		ID:        uuid.New(),
		UserID:    userID,
		ExamDate:  DayOf(examDate),
		CreatedAt: time.Now().UTC(),
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// Validate checks if the StudyPlan has valid data.
func (p *StudyPlan) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyPlanUserID
	}
	if p.ExamDate.IsZero() {
		return ErrZeroExamDate
	}
	if p.ExamDate.Before(DayOf(p.CreatedAt)) {
		return ErrInvalidDateRange
	}
	return nil
}

// StartDate returns the first schedulable day of the plan (the creation day).
func (p *StudyPlan) StartDate() time.Time {
	return DayOf(p.CreatedAt)
}

// Contains reports whether date falls within [creation day, exam date]
// inclusive, at day precision.
func (p *StudyPlan) Contains(date time.Time) bool {
	d := DayOf(date)
	return !d.Before(p.StartDate()) && !d.After(p.ExamDate)
}

// DayOf truncates t to midnight UTC. All scheduling arithmetic in the engine
// happens at day precision.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
