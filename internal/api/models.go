package api

import (
	"time"

	"github.com/premedly/studyplan-api/internal/domain"
)

// CategoryMasteryResponse is one entry in the weakest-categories ranking.
type CategoryMasteryResponse struct {
	CategoryID string  `json:"category_id"`
	Concept    string  `json:"concept"`
	Mastery    float64 `json:"mastery"`
	Seen       bool    `json:"seen"`
}

// IngestRequest represents the request body for ingesting a practice result.
type IngestRequest struct {
	SubjectLabel string `json:"subject_label" validate:"required"`
	Correct      int    `json:"correct"       validate:"gte=0"`
	Incorrect    int    `json:"incorrect"     validate:"gte=0"`
	Note         string `json:"note"          validate:"max=1000"`
}

// SourceIngestRequest is the server-to-server variant; the caller asserts
// the user on whose behalf it is ingesting.
type SourceIngestRequest struct {
	UserID       string `json:"user_id"       validate:"required,uuid"`
	SubjectLabel string `json:"subject_label" validate:"required"`
	Correct      int    `json:"correct"       validate:"gte=0"`
	Incorrect    int    `json:"incorrect"     validate:"gte=0"`
	Note         string `json:"note"          validate:"max=1000"`
}

// IngestResponse reports how many pulses were created and how many failed.
type IngestResponse struct {
	CreatedPulses int `json:"created_pulses"`
	FailedPulses  int `json:"failed_pulses"`
}

// PulseResponse represents one evidence record.
type PulseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Level     string    `json:"level"`
	Source    string    `json:"source"`
	Weight    int       `json:"weight"`
	Positive  int       `json:"positive"`
	Negative  int       `json:"negative"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePlanRequest represents the request body for generating a study plan.
type CreatePlanRequest struct {
	ExamDate string `json:"exam_date" validate:"required,datetime=2006-01-02"`
}

// PlanResponse reports a generated plan.
type PlanResponse struct {
	PlanID        string `json:"plan_id"`
	ActivityCount int    `json:"activity_count"`
}

// PlanDetailResponse is the plan with its activities.
type PlanDetailResponse struct {
	PlanID     string             `json:"plan_id"`
	ExamDate   string             `json:"exam_date"`
	CreatedAt  time.Time          `json:"created_at"`
	Activities []ActivityResponse `json:"activities"`
}

// ActivityResponse represents one scheduled activity.
type ActivityResponse struct {
	ID               string  `json:"id"`
	ScheduledDate    string  `json:"scheduled_date"`
	Title            string  `json:"title"`
	Hours            float64 `json:"hours"`
	Type             string  `json:"type"`
	Status           string  `json:"status"`
	FullLengthNumber *int    `json:"full_length_number,omitempty"`
}

// ReplaceActivityRequest represents the request body for replacing an
// activity.
type ReplaceActivityRequest struct {
	NewType string `json:"new_type" validate:"required,oneof=content_review practice_passages full_length_exam"`
	Scope   string `json:"scope"    validate:"required,oneof=single future"`
}

// ReplaceActivityResponse reports how many activities were rewritten.
type ReplaceActivityResponse struct {
	UpdatedCount int64 `json:"updated_count"`
}

// UpdateActivityStatusRequest represents the request body for completing or
// skipping an activity.
type UpdateActivityStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed skipped"`
}

// ResetPlanResponse reports what a plan reset removed.
type ResetPlanResponse struct {
	DeletedActivities int64 `json:"deleted_activities"`
	DeletedPlans      int64 `json:"deleted_plans"`
}

// ComputeLevelRequest represents the request body for computing a level from
// unlocked rooms.
type ComputeLevelRequest struct {
	UnlockedRoomIDs []string `json:"unlocked_room_ids"`
}

// ComputeLevelResponse reports the computed level.
type ComputeLevelResponse struct {
	Level      string `json:"level"`
	LevelIndex int    `json:"level_index"`
}

// YieldResponse reports the resource yields for a level and streak.
type YieldResponse struct {
	PatientsPerDay int     `json:"patients_per_day"`
	QualityOfCare  float64 `json:"quality_of_care"`
	TotalQC        float64 `json:"total_qc"`
}

func activityToResponse(a *domain.CalendarActivity) ActivityResponse {
	return ActivityResponse{
		ID:               a.ID.String(),
		ScheduledDate:    a.ScheduledDate.Format("2006-01-02"),
		Title:            a.Title,
		Hours:            a.Hours,
		Type:             string(a.Type),
		Status:           string(a.Status),
		FullLengthNumber: a.FullLengthNumber,
	}
}

func pulseToResponse(p *domain.DataPulse) PulseResponse {
	return PulseResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Level:     string(p.Level),
		Source:    p.Source,
		Weight:    p.Weight,
		Positive:  p.Positive,
		Negative:  p.Negative,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}
