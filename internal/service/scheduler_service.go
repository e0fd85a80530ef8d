package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/config"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/store"
)

// ReplaceScope selects how much of the schedule a replacement touches.
type ReplaceScope string

// Known replacement scopes.
const (
	// ReplaceScopeSingle rewrites only the addressed activity.
	ReplaceScopeSingle ReplaceScope = "single"

	// ReplaceScopeFuture rewrites the addressed activity and every later
	// pending activity of the same type in the plan.
	ReplaceScopeFuture ReplaceScope = "future"
)

// PlanResult reports a generated plan.
type PlanResult struct {
	PlanID        uuid.UUID `json:"plan_id"`
	ActivityCount int       `json:"activity_count"`
}

// ResetResult reports what a plan reset removed. Zero counts mean the user
// had no plan; that is not an error.
type ResetResult struct {
	DeletedActivities int64 `json:"deleted_activities"`
	DeletedPlans      int64 `json:"deleted_plans"`
}

// SchedulerService generates and maintains study plans and their calendar
// activities.
type SchedulerService interface {
	// GenerateStudyPlan creates a plan from today through examDate inclusive
	// and materializes one activity per day: full-length exams at the fixed
	// pre-exam offsets, content review for the weakest categories (cycling)
	// everywhere else. An existing plan is superseded. Plans longer than the
	// free horizon require premium.
	GenerateStudyPlan(
		ctx context.Context,
		userID uuid.UUID,
		examDate time.Time,
		premium bool,
	) (*PlanResult, error)

	// GetStudyPlan returns the user's plan and its activities ordered by date.
	GetStudyPlan(ctx context.Context, userID uuid.UUID) (*domain.StudyPlan, []*domain.CalendarActivity, error)

	// ReplaceActivity rewrites a pending activity (and, with scope future,
	// every later pending activity of the same type) to a new type. Returns
	// the number of activities changed.
	ReplaceActivity(
		ctx context.Context,
		userID, activityID uuid.UUID,
		newType domain.ActivityType,
		scope ReplaceScope,
	) (int64, error)

	// UpdateActivityStatus moves a pending activity to completed or skipped.
	UpdateActivityStatus(
		ctx context.Context,
		userID, activityID uuid.UUID,
		status domain.ActivityStatus,
	) error

	// ResetStudyPlan deletes the user's plan and all of its activities
	// atomically, reporting the removal counts.
	ResetStudyPlan(ctx context.Context, userID uuid.UUID) (*ResetResult, error)
}

// SchedulerServiceError wraps errors from the scheduler service with context.
type SchedulerServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for SchedulerServiceError.
func (e *SchedulerServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scheduler service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("scheduler service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SchedulerServiceError) Unwrap() error {
	return e.Err
}

// NewSchedulerServiceError creates a new SchedulerServiceError.
// It returns known sentinel errors directly without wrapping.
func NewSchedulerServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrPlanNotFound), errors.Is(err, store.ErrPlanNotFound):
		return ErrPlanNotFound
	case errors.Is(err, ErrActivityNotFound), errors.Is(err, store.ErrActivityNotFound):
		return ErrActivityNotFound
	}

	return &SchedulerServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// schedulerServiceImpl implements the SchedulerService interface
type schedulerServiceImpl struct {
	db             *sql.DB
	planStore      store.StudyPlanStore
	activityStore  store.CalendarActivityStore
	masteryService MasteryService
	cfg            config.SchedulerConfig
	logger         *slog.Logger
}

// NewSchedulerService creates a new SchedulerService.
func NewSchedulerService(
	db *sql.DB,
	planStore store.StudyPlanStore,
	activityStore store.CalendarActivityStore,
	masteryService MasteryService,
	cfg config.SchedulerConfig,
	logger *slog.Logger,
) (SchedulerService, error) {
	if db == nil {
		return nil, &SchedulerServiceError{
			Operation: "create_service",
			Message:   "db cannot be nil",
		}
	}
	if planStore == nil {
		return nil, &SchedulerServiceError{
			Operation: "create_service",
			Message:   "planStore cannot be nil",
		}
	}
	if activityStore == nil {
		return nil, &SchedulerServiceError{
			Operation: "create_service",
			Message:   "activityStore cannot be nil",
		}
	}
	if masteryService == nil {
		return nil, &SchedulerServiceError{
			Operation: "create_service",
			Message:   "masteryService cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &schedulerServiceImpl{
		db:             db,
		planStore:      planStore,
		activityStore:  activityStore,
		masteryService: masteryService,
		cfg:            cfg,
		logger:         logger.With("component", "scheduler_service"),
	}, nil
}

// GenerateStudyPlan builds the plan and all of its activities in a single
// transaction; a failure partway rolls back so a half-built schedule never
// becomes visible.
func (s *schedulerServiceImpl) GenerateStudyPlan(
	ctx context.Context,
	userID uuid.UUID,
	examDate time.Time,
	premium bool,
) (*PlanResult, error) {
	plan, err := domain.NewStudyPlan(userID, examDate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return nil, ErrInvalidExamDate
		}
		return nil, NewSchedulerServiceError(
			"generate_study_plan",
			"failed to build plan",
			err,
		)
	}

	horizonDays := planLengthDays(plan)
	if horizonDays > s.cfg.FreeHorizonDays && !premium {
		s.logger.Info("plan horizon exceeds free tier",
			"user_id", userID,
			"horizon_days", horizonDays,
			"free_horizon_days", s.cfg.FreeHorizonDays)
		return nil, ErrPremiumRequired
	}

	// Rank before opening the transaction; the ranking read does not need
	// to see the writes and keeping it outside shortens the transaction.
	weakest, err := s.masteryService.GetWeakestCategories(ctx, userID, "", horizonDays)
	if err != nil {
		return nil, NewSchedulerServiceError(
			"generate_study_plan",
			"failed to rank weakest categories",
			err,
		)
	}

	activities, err := buildActivities(plan, weakest, s.cfg)
	if err != nil {
		return nil, NewSchedulerServiceError(
			"generate_study_plan",
			"failed to build activities",
			err,
		)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPlans := s.planStore.WithTx(tx)
		txActivities := s.activityStore.WithTx(tx)

		// Supersede: a new plan replaces whatever the user had.
		existing, err := txPlans.GetByUser(ctx, userID)
		switch {
		case err == nil:
			if _, err := txActivities.DeleteByPlan(ctx, existing.ID); err != nil {
				return NewSchedulerServiceError(
					"generate_study_plan",
					"failed to remove superseded activities",
					err,
				)
			}
			if _, err := txPlans.DeleteByUser(ctx, userID); err != nil {
				return NewSchedulerServiceError(
					"generate_study_plan",
					"failed to remove superseded plan",
					err,
				)
			}
		case errors.Is(err, store.ErrPlanNotFound):
			// First plan for this user.
		default:
			return NewSchedulerServiceError(
				"generate_study_plan",
				"failed to check for existing plan",
				err,
			)
		}

		if err := txPlans.Create(ctx, plan); err != nil {
			return NewSchedulerServiceError(
				"generate_study_plan",
				"failed to save plan",
				err,
			)
		}

		if err := txActivities.CreateBatch(ctx, activities); err != nil {
			return NewSchedulerServiceError(
				"generate_study_plan",
				"failed to save activities",
				err,
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("study plan generated",
		"user_id", userID,
		"plan_id", plan.ID,
		"exam_date", plan.ExamDate,
		"activity_count", len(activities))
	return &PlanResult{
		PlanID:        plan.ID,
		ActivityCount: len(activities),
	}, nil
}

// GetStudyPlan returns the user's plan and its activities.
func (s *schedulerServiceImpl) GetStudyPlan(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.StudyPlan, []*domain.CalendarActivity, error) {
	plan, err := s.planStore.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrPlanNotFound) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, NewSchedulerServiceError(
			"get_study_plan",
			"failed to load plan",
			err,
		)
	}

	activities, err := s.activityStore.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, nil, NewSchedulerServiceError(
			"get_study_plan",
			"failed to load activities",
			err,
		)
	}

	return plan, activities, nil
}

// ReplaceActivity rewrites one or more pending activities to a new type.
func (s *schedulerServiceImpl) ReplaceActivity(
	ctx context.Context,
	userID, activityID uuid.UUID,
	newType domain.ActivityType,
	scope ReplaceScope,
) (int64, error) {
	if !domain.ValidActivityType(newType) {
		return 0, domain.ErrInvalidActivityType
	}
	if scope != ReplaceScopeSingle && scope != ReplaceScopeFuture {
		return 0, ErrInvalidScope
	}

	activity, err := s.activityStore.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, store.ErrActivityNotFound) {
			return 0, ErrActivityNotFound
		}
		return 0, NewSchedulerServiceError(
			"replace_activity",
			"failed to load activity",
			err,
		)
	}

	if activity.UserID != userID {
		return 0, ErrNotOwned
	}
	if activity.Status != domain.ActivityStatusPending {
		return 0, ErrActivityNotReplaceable
	}

	title := titleForType(newType)
	hours := s.hoursForType(newType)

	var updated int64
	switch scope {
	case ReplaceScopeSingle:
		updated, err = s.activityStore.Replace(ctx, activityID, newType, title, hours)
	case ReplaceScopeFuture:
		// One statement over the date range keeps the batch atomic; no
		// per-row loop that could fail halfway.
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			txActivities := s.activityStore.WithTx(tx)
			var txErr error
			updated, txErr = txActivities.ReplaceFuture(
				ctx,
				activity.PlanID,
				activity.Type,
				activity.ScheduledDate,
				newType,
				title,
				hours,
			)
			return txErr
		})
	}
	if err != nil {
		return 0, NewSchedulerServiceError(
			"replace_activity",
			"failed to replace activities",
			err,
		)
	}

	if updated == 0 {
		// Lost a race with a completion or another replacement.
		return 0, ErrActivityNotReplaceable
	}

	s.logger.Info("activities replaced",
		"user_id", userID,
		"activity_id", activityID,
		"new_type", newType,
		"scope", scope,
		"updated", updated)
	return updated, nil
}

// UpdateActivityStatus moves a pending activity to a terminal status.
func (s *schedulerServiceImpl) UpdateActivityStatus(
	ctx context.Context,
	userID, activityID uuid.UUID,
	status domain.ActivityStatus,
) error {
	activity, err := s.activityStore.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, store.ErrActivityNotFound) {
			return ErrActivityNotFound
		}
		return NewSchedulerServiceError(
			"update_activity_status",
			"failed to load activity",
			err,
		)
	}

	if activity.UserID != userID {
		return ErrNotOwned
	}
	if !activity.CanTransitionTo(status) {
		return ErrActivityNotReplaceable
	}

	if err := s.activityStore.UpdateStatus(ctx, activityID, status); err != nil {
		if errors.Is(err, store.ErrActivityNotFound) {
			return ErrActivityNotReplaceable
		}
		return NewSchedulerServiceError(
			"update_activity_status",
			"failed to update status",
			err,
		)
	}

	s.logger.Info("activity status updated",
		"user_id", userID,
		"activity_id", activityID,
		"status", status)
	return nil
}

// ResetStudyPlan deletes the plan and its activities in one transaction.
func (s *schedulerServiceImpl) ResetStudyPlan(
	ctx context.Context,
	userID uuid.UUID,
) (*ResetResult, error) {
	result := &ResetResult{}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPlans := s.planStore.WithTx(tx)
		txActivities := s.activityStore.WithTx(tx)

		plan, err := txPlans.GetByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrPlanNotFound) {
				// Nothing to reset; report zero counts.
				return nil
			}
			return NewSchedulerServiceError(
				"reset_study_plan",
				"failed to load plan",
				err,
			)
		}

		deletedActivities, err := txActivities.DeleteByPlan(ctx, plan.ID)
		if err != nil {
			return NewSchedulerServiceError(
				"reset_study_plan",
				"failed to delete activities",
				err,
			)
		}

		deletedPlans, err := txPlans.DeleteByUser(ctx, userID)
		if err != nil {
			return NewSchedulerServiceError(
				"reset_study_plan",
				"failed to delete plan",
				err,
			)
		}

		result.DeletedActivities = deletedActivities
		result.DeletedPlans = deletedPlans
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("study plan reset",
		"user_id", userID,
		"deleted_activities", result.DeletedActivities,
		"deleted_plans", result.DeletedPlans)
	return result, nil
}

// hoursForType returns the configured time estimate for an activity type.
func (s *schedulerServiceImpl) hoursForType(t domain.ActivityType) float64 {
	if t == domain.ActivityTypeFullLengthExam {
		return s.cfg.ExamHours
	}
	return s.cfg.ReviewHours
}

// titleForType returns the generic title used when an activity is rewritten
// to a new type without a category to name.
func titleForType(t domain.ActivityType) string {
	switch t {
	case domain.ActivityTypeFullLengthExam:
		return "Full-Length Exam"
	case domain.ActivityTypePracticePassages:
		return "Practice Passages"
	default:
		return "Content Review"
	}
}

// planLengthDays returns the inclusive number of days the plan covers.
func planLengthDays(plan *domain.StudyPlan) int {
	return int(plan.ExamDate.Sub(plan.StartDate())/(24*time.Hour)) + 1
}

// buildActivities walks the plan's inclusive date range and assigns one
// activity per day. Days at the configured offsets before the exam date get
// a full-length exam, numbered chronologically; every other day gets a
// content review for the next weakest category, cycling back to the start
// of the ranking when it runs out.
func buildActivities(
	plan *domain.StudyPlan,
	weakest []domain.CategoryMastery,
	cfg config.SchedulerConfig,
) ([]*domain.CalendarActivity, error) {
	examDays := make(map[time.Time]bool, len(cfg.ExamDayOffsets))
	for _, offset := range cfg.ExamDayOffsets {
		d := plan.ExamDate.AddDate(0, 0, -offset)
		if !d.Before(plan.StartDate()) {
			examDays[d] = true
		}
	}

	var activities []*domain.CalendarActivity
	reviewIdx := 0
	examNumber := 0

	for d := plan.StartDate(); !d.After(plan.ExamDate); d = d.AddDate(0, 0, 1) {
		var activity *domain.CalendarActivity
		var err error

		if examDays[d] {
			examNumber++
			activity, err = domain.NewCalendarActivity(
				plan.UserID,
				plan.ID,
				d,
				fmt.Sprintf("Full-Length Exam %d", examNumber),
				cfg.ExamHours,
				domain.ActivityTypeFullLengthExam,
			)
			if err == nil {
				n := examNumber
				activity.FullLengthNumber = &n
			}
		} else {
			title := "Content Review"
			if len(weakest) > 0 {
				title = fmt.Sprintf("Review: %s", weakest[reviewIdx%len(weakest)].Concept)
				reviewIdx++
			}
			activity, err = domain.NewCalendarActivity(
				plan.UserID,
				plan.ID,
				d,
				title,
				cfg.ReviewHours,
				domain.ActivityTypeContentReview,
			)
		}
		if err != nil {
			return nil, err
		}

		activities = append(activities, activity)
	}

	return activities, nil
}
