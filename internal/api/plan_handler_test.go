package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/api/shared"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/service"
)

// mockSchedulerService is a mock implementation of the SchedulerService
// interface
type mockSchedulerService struct {
	generateFn     func(ctx context.Context, userID uuid.UUID, examDate time.Time, premium bool) (*service.PlanResult, error)
	getPlanFn      func(ctx context.Context, userID uuid.UUID) (*domain.StudyPlan, []*domain.CalendarActivity, error)
	replaceFn      func(ctx context.Context, userID, activityID uuid.UUID, newType domain.ActivityType, scope service.ReplaceScope) (int64, error)
	updateStatusFn func(ctx context.Context, userID, activityID uuid.UUID, status domain.ActivityStatus) error
	resetFn        func(ctx context.Context, userID uuid.UUID) (*service.ResetResult, error)
}

func (m *mockSchedulerService) GenerateStudyPlan(
	ctx context.Context,
	userID uuid.UUID,
	examDate time.Time,
	premium bool,
) (*service.PlanResult, error) {
	return m.generateFn(ctx, userID, examDate, premium)
}

func (m *mockSchedulerService) GetStudyPlan(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.StudyPlan, []*domain.CalendarActivity, error) {
	return m.getPlanFn(ctx, userID)
}

func (m *mockSchedulerService) ReplaceActivity(
	ctx context.Context,
	userID, activityID uuid.UUID,
	newType domain.ActivityType,
	scope service.ReplaceScope,
) (int64, error) {
	return m.replaceFn(ctx, userID, activityID, newType, scope)
}

func (m *mockSchedulerService) UpdateActivityStatus(
	ctx context.Context,
	userID, activityID uuid.UUID,
	status domain.ActivityStatus,
) error {
	return m.updateStatusFn(ctx, userID, activityID, status)
}

func (m *mockSchedulerService) ResetStudyPlan(
	ctx context.Context,
	userID uuid.UUID,
) (*service.ResetResult, error) {
	return m.resetFn(ctx, userID)
}

// activityRequest builds a request with the activity ID in the chi route
// context and the user ID in the auth context.
func activityRequest(method, rawID, action, body string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(
		method,
		"/api/activities/"+rawID+"/"+action,
		strings.NewReader(body),
	)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", rawID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	return withUserID(req, userID)
}

func TestCreatePlan(t *testing.T) {
	userID := uuid.New()
	planID := uuid.New()

	t.Run("success with premium flag from context", func(t *testing.T) {
		svc := &mockSchedulerService{
			generateFn: func(_ context.Context, uid uuid.UUID, examDate time.Time, premium bool) (*service.PlanResult, error) {
				if uid != userID {
					t.Errorf("Expected user %s, got %s", userID, uid)
				}
				if !premium {
					t.Error("Expected premium flag to be carried from the token")
				}
				if examDate.Format("2006-01-02") != "2027-04-10" {
					t.Errorf("Unexpected exam date: %s", examDate)
				}
				return &service.PlanResult{PlanID: planID, ActivityCount: 42}, nil
			},
		}
		handler := NewPlanHandler(svc, slog.Default())

		req := httptest.NewRequest(
			http.MethodPost,
			"/api/plans",
			strings.NewReader(`{"exam_date":"2027-04-10"}`),
		)
		req = withUserID(req, userID)
		req = req.WithContext(context.WithValue(req.Context(), shared.PremiumContextKey, true))

		rr := httptest.NewRecorder()
		handler.CreatePlan(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", rr.Code)
		}

		var resp PlanResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.PlanID != planID.String() || resp.ActivityCount != 42 {
			t.Errorf("Unexpected response: %+v", resp)
		}
	})

	t.Run("malformed exam date", func(t *testing.T) {
		handler := NewPlanHandler(&mockSchedulerService{}, slog.Default())

		req := httptest.NewRequest(
			http.MethodPost,
			"/api/plans",
			strings.NewReader(`{"exam_date":"April 10th"}`),
		)
		rr := httptest.NewRecorder()
		handler.CreatePlan(rr, withUserID(req, userID))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("past exam date", func(t *testing.T) {
		svc := &mockSchedulerService{
			generateFn: func(context.Context, uuid.UUID, time.Time, bool) (*service.PlanResult, error) {
				return nil, service.ErrInvalidExamDate
			},
		}
		handler := NewPlanHandler(svc, slog.Default())

		req := httptest.NewRequest(
			http.MethodPost,
			"/api/plans",
			strings.NewReader(`{"exam_date":"2020-01-01"}`),
		)
		rr := httptest.NewRecorder()
		handler.CreatePlan(rr, withUserID(req, userID))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("premium required", func(t *testing.T) {
		svc := &mockSchedulerService{
			generateFn: func(context.Context, uuid.UUID, time.Time, bool) (*service.PlanResult, error) {
				return nil, service.ErrPremiumRequired
			},
		}
		handler := NewPlanHandler(svc, slog.Default())

		req := httptest.NewRequest(
			http.MethodPost,
			"/api/plans",
			strings.NewReader(`{"exam_date":"2027-04-10"}`),
		)
		rr := httptest.NewRecorder()
		handler.CreatePlan(rr, withUserID(req, userID))

		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", rr.Code)
		}
	})
}

func TestGetPlanHTTP(t *testing.T) {
	userID := uuid.New()

	t.Run("returns plan with activities", func(t *testing.T) {
		plan := &domain.StudyPlan{
			ID:        uuid.New(),
			UserID:    userID,
			ExamDate:  time.Date(2027, 4, 10, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Now().UTC(),
		}
		flNumber := 1
		activities := []*domain.CalendarActivity{
			{
				ID:               uuid.New(),
				UserID:           userID,
				PlanID:           plan.ID,
				ScheduledDate:    time.Date(2027, 4, 3, 0, 0, 0, 0, time.UTC),
				Title:            "Full-Length Exam 1",
				Hours:            7.5,
				Type:             domain.ActivityTypeFullLengthExam,
				Status:           domain.ActivityStatusPending,
				FullLengthNumber: &flNumber,
			},
		}
		svc := &mockSchedulerService{
			getPlanFn: func(context.Context, uuid.UUID) (*domain.StudyPlan, []*domain.CalendarActivity, error) {
				return plan, activities, nil
			},
		}
		handler := NewPlanHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/api/plans/current", nil)
		rr := httptest.NewRecorder()
		handler.GetPlan(rr, withUserID(req, userID))

		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}

		var resp PlanDetailResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.ExamDate != "2027-04-10" {
			t.Errorf("Expected exam date 2027-04-10, got %s", resp.ExamDate)
		}
		if len(resp.Activities) != 1 {
			t.Fatalf("Expected 1 activity, got %d", len(resp.Activities))
		}
		got := resp.Activities[0]
		if got.Title != "Full-Length Exam 1" || got.ScheduledDate != "2027-04-03" {
			t.Errorf("Unexpected activity: %+v", got)
		}
		if got.FullLengthNumber == nil || *got.FullLengthNumber != 1 {
			t.Errorf("Expected full-length number 1, got %v", got.FullLengthNumber)
		}
	})

	t.Run("no plan", func(t *testing.T) {
		svc := &mockSchedulerService{
			getPlanFn: func(context.Context, uuid.UUID) (*domain.StudyPlan, []*domain.CalendarActivity, error) {
				return nil, nil, service.ErrPlanNotFound
			},
		}
		handler := NewPlanHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/api/plans/current", nil)
		rr := httptest.NewRecorder()
		handler.GetPlan(rr, withUserID(req, userID))

		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rr.Code)
		}
	})
}

func TestReplaceActivityHTTP(t *testing.T) {
	userID := uuid.New()
	activityID := uuid.New()

	t.Run("future scope", func(t *testing.T) {
		svc := &mockSchedulerService{
			replaceFn: func(_ context.Context, uid, aid uuid.UUID, newType domain.ActivityType, scope service.ReplaceScope) (int64, error) {
				if uid != userID || aid != activityID {
					t.Errorf("Unexpected IDs: user %s activity %s", uid, aid)
				}
				if newType != domain.ActivityTypePracticePassages {
					t.Errorf("Expected practice_passages, got %s", newType)
				}
				if scope != service.ReplaceScopeFuture {
					t.Errorf("Expected future scope, got %s", scope)
				}
				return 4, nil
			},
		}
		handler := NewPlanHandler(svc, slog.Default())

		body := `{"new_type":"practice_passages","scope":"future"}`
		rr := httptest.NewRecorder()
		handler.ReplaceActivity(rr, activityRequest(http.MethodPost, activityID.String(), "replace", body, userID))

		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}

		var resp ReplaceActivityResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.UpdatedCount != 4 {
			t.Errorf("Expected 4 updated, got %d", resp.UpdatedCount)
		}
	})

	t.Run("unknown scope rejected by validation", func(t *testing.T) {
		handler := NewPlanHandler(&mockSchedulerService{}, slog.Default())

		body := `{"new_type":"practice_passages","scope":"everything"}`
		rr := httptest.NewRecorder()
		handler.ReplaceActivity(rr, activityRequest(http.MethodPost, activityID.String(), "replace", body, userID))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("terminal activity", func(t *testing.T) {
		svc := &mockSchedulerService{
			replaceFn: func(context.Context, uuid.UUID, uuid.UUID, domain.ActivityType, service.ReplaceScope) (int64, error) {
				return 0, service.ErrActivityNotReplaceable
			},
		}
		handler := NewPlanHandler(svc, slog.Default())

		body := `{"new_type":"content_review","scope":"single"}`
		rr := httptest.NewRecorder()
		handler.ReplaceActivity(rr, activityRequest(http.MethodPost, activityID.String(), "replace", body, userID))

		if rr.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", rr.Code)
		}
	})

	t.Run("foreign activity", func(t *testing.T) {
		svc := &mockSchedulerService{
			replaceFn: func(context.Context, uuid.UUID, uuid.UUID, domain.ActivityType, service.ReplaceScope) (int64, error) {
				return 0, service.ErrNotOwned
			},
		}
		handler := NewPlanHandler(svc, slog.Default())

		body := `{"new_type":"content_review","scope":"single"}`
		rr := httptest.NewRecorder()
		handler.ReplaceActivity(rr, activityRequest(http.MethodPost, activityID.String(), "replace", body, userID))

		if rr.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", rr.Code)
		}
	})
}

func TestUpdateActivityStatusHTTP(t *testing.T) {
	userID := uuid.New()
	activityID := uuid.New()

	t.Run("complete an activity", func(t *testing.T) {
		svc := &mockSchedulerService{
			updateStatusFn: func(_ context.Context, _, _ uuid.UUID, status domain.ActivityStatus) error {
				if status != domain.ActivityStatusCompleted {
					t.Errorf("Expected completed, got %s", status)
				}
				return nil
			},
		}
		handler := NewPlanHandler(svc, slog.Default())

		body := `{"status":"completed"}`
		rr := httptest.NewRecorder()
		handler.UpdateActivityStatus(rr, activityRequest(http.MethodPatch, activityID.String(), "status", body, userID))

		if rr.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", rr.Code)
		}
	})

	t.Run("pending is not a valid target", func(t *testing.T) {
		handler := NewPlanHandler(&mockSchedulerService{}, slog.Default())

		body := `{"status":"pending"}`
		rr := httptest.NewRecorder()
		handler.UpdateActivityStatus(rr, activityRequest(http.MethodPatch, activityID.String(), "status", body, userID))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})
}

func TestResetPlanHTTP(t *testing.T) {
	userID := uuid.New()

	svc := &mockSchedulerService{
		resetFn: func(context.Context, uuid.UUID) (*service.ResetResult, error) {
			return &service.ResetResult{DeletedActivities: 30, DeletedPlans: 1}, nil
		},
	}
	handler := NewPlanHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodDelete, "/api/plans/current", nil)
	rr := httptest.NewRecorder()
	handler.ResetPlan(rr, withUserID(req, userID))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp ResetPlanResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.DeletedActivities != 30 || resp.DeletedPlans != 1 {
		t.Errorf("Unexpected response: %+v", resp)
	}
}
