package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ActivityType classifies one scheduled unit of work.
type ActivityType string

// Known activity types.
const (
	ActivityTypeContentReview    ActivityType = "content_review"
	ActivityTypePracticePassages ActivityType = "practice_passages"
	ActivityTypeFullLengthExam   ActivityType = "full_length_exam"
)

// ValidActivityType reports whether t is a known activity type.
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityTypeContentReview, ActivityTypePracticePassages, ActivityTypeFullLengthExam:
		return true
	}
	return false
}

// ActivityStatus is the lifecycle state of a scheduled activity.
// Transitions from pending are terminal: pending -> completed,
// pending -> skipped, or pending -> replaced (the row is rewritten in place).
// A plan reset deletes activities regardless of state.
type ActivityStatus string

// Known activity statuses.
const (
	ActivityStatusPending   ActivityStatus = "pending"
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusSkipped   ActivityStatus = "skipped"
)

// ValidActivityStatus reports whether s is a known activity status.
func ValidActivityStatus(s ActivityStatus) bool {
	switch s {
	case ActivityStatusPending, ActivityStatusCompleted, ActivityStatusSkipped:
		return true
	}
	return false
}

// Common validation errors for CalendarActivity.
var (
	ErrEmptyActivityUserID = errors.New("calendar activity user ID cannot be empty")
	ErrEmptyActivityPlanID = errors.New("calendar activity plan ID cannot be empty")
	ErrEmptyActivityTitle  = errors.New("calendar activity title cannot be empty")
	ErrInvalidActivityHours = errors.New(
		"calendar activity hours must be greater than 0",
	)
)

// CalendarActivity is one dated, typed unit of scheduled work within a
// StudyPlan. Activities are created in bulk when a plan is generated and
// deleted in bulk when the plan is reset.
type CalendarActivity struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"user_id"`
	PlanID           uuid.UUID      `json:"plan_id"`
	ScheduledDate    time.Time      `json:"scheduled_date"`
	Title            string         `json:"title"`
	Hours            float64        `json:"hours"`
	Type             ActivityType   `json:"type"`
	Status           ActivityStatus `json:"status"`
	FullLengthNumber *int           `json:"full_length_number,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NewCalendarActivity creates a pending activity scheduled for the given day.
func NewCalendarActivity(
	userID, planID uuid.UUID,
	scheduledDate time.Time,
	title string,
	hours float64,
	activityType ActivityType,
) (*CalendarActivity, error) {
	now := time.Now().UTC()
	activity := &CalendarActivity{
		ID:            uuid.New(),
		UserID:        userID,
		PlanID:        planID,
		ScheduledDate: DayOf(scheduledDate),
		Title:         title,
		Hours:         hours,
		Type:          activityType,
		Status:        ActivityStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

// Validate checks if the CalendarActivity has valid data.
func (a *CalendarActivity) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrEmptyActivityUserID
	}
	if a.PlanID == uuid.Nil {
		return ErrEmptyActivityPlanID
	}
	if a.Title == "" {
		return ErrEmptyActivityTitle
	}
	if a.Hours <= 0 {
		return ErrInvalidActivityHours
	}
	if !ValidActivityType(a.Type) {
		return ErrInvalidActivityType
	}
	if !ValidActivityStatus(a.Status) {
		return ErrInvalidActivityStatus
	}
	return nil
}

// CanTransitionTo reports whether the activity may move to the given status.
// Only pending activities accept a transition, and only to a terminal state.
func (a *CalendarActivity) CanTransitionTo(status ActivityStatus) bool {
	if a.Status != ActivityStatusPending {
		return false
	}
	return status == ActivityStatusCompleted || status == ActivityStatusSkipped
}
