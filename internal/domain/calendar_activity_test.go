package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewCalendarActivity(t *testing.T) {
	userID := uuid.New()
	planID := uuid.New()
	date := time.Date(2024, 6, 1, 15, 45, 0, 0, time.UTC)

	activity, err := NewCalendarActivity(userID, planID, date, "Review: Genetics", 2.0, ActivityTypeContentReview)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if activity.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if activity.Status != ActivityStatusPending {
		t.Errorf("Expected pending status, got %s", activity.Status)
	}
	if !activity.ScheduledDate.Equal(DayOf(date)) {
		t.Errorf("Expected date truncated to %v, got %v", DayOf(date), activity.ScheduledDate)
	}
	if activity.FullLengthNumber != nil {
		t.Error("Expected nil FullLengthNumber for a review activity")
	}

	// Test missing user
	_, err = NewCalendarActivity(uuid.Nil, planID, date, "Review", 2.0, ActivityTypeContentReview)
	if err != ErrEmptyActivityUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyActivityUserID, err)
	}

	// Test missing plan
	_, err = NewCalendarActivity(userID, uuid.Nil, date, "Review", 2.0, ActivityTypeContentReview)
	if err != ErrEmptyActivityPlanID {
		t.Errorf("Expected error %v, got %v", ErrEmptyActivityPlanID, err)
	}

	// Test empty title
	_, err = NewCalendarActivity(userID, planID, date, "", 2.0, ActivityTypeContentReview)
	if err != ErrEmptyActivityTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyActivityTitle, err)
	}

	// Test non-positive hours
	_, err = NewCalendarActivity(userID, planID, date, "Review", 0, ActivityTypeContentReview)
	if err != ErrInvalidActivityHours {
		t.Errorf("Expected error %v, got %v", ErrInvalidActivityHours, err)
	}

	// Test unknown type
	_, err = NewCalendarActivity(userID, planID, date, "Review", 2.0, ActivityType("nap"))
	if err != ErrInvalidActivityType {
		t.Errorf("Expected error %v, got %v", ErrInvalidActivityType, err)
	}
}

func TestCanTransitionTo(t *testing.T) {
	testCases := []struct {
		name     string
		from     ActivityStatus
		to       ActivityStatus
		expected bool
	}{
		{"pending to completed", ActivityStatusPending, ActivityStatusCompleted, true},
		{"pending to skipped", ActivityStatusPending, ActivityStatusSkipped, true},
		{"pending to pending", ActivityStatusPending, ActivityStatusPending, false},
		{"completed is terminal", ActivityStatusCompleted, ActivityStatusSkipped, false},
		{"skipped is terminal", ActivityStatusSkipped, ActivityStatusCompleted, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			activity := &CalendarActivity{Status: tc.from}
			if got := activity.CanTransitionTo(tc.to); got != tc.expected {
				t.Errorf("Expected %v for %s -> %s, got %v", tc.expected, tc.from, tc.to, got)
			}
		})
	}
}
