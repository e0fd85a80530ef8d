package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/api/middleware"
	"github.com/premedly/studyplan-api/internal/api/shared"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/platform/logger"
	"github.com/premedly/studyplan-api/internal/service"
)

// PlanHandler handles study-plan and calendar-activity HTTP requests
type PlanHandler struct {
	schedulerService service.SchedulerService
	logger           *slog.Logger
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(
	schedulerService service.SchedulerService,
	logger *slog.Logger,
) *PlanHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PlanHandler")
	}

	return &PlanHandler{
		schedulerService: schedulerService,
		logger:           logger.With(slog.String("component", "plan_handler")),
	}
}

// CreatePlan handles POST /plans requests, generating a study plan from
// today through the requested exam date.
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreatePlanRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	examDate, err := time.Parse("2006-01-02", req.ExamDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "exam_date must be YYYY-MM-DD")
		return
	}

	premium := middleware.GetPremium(r)

	result, err := h.schedulerService.GenerateStudyPlan(r.Context(), userID, examDate, premium)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("study plan created",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", result.PlanID.String()),
		slog.Int("activity_count", result.ActivityCount))
	shared.RespondWithJSON(w, r, http.StatusCreated, PlanResponse{
		PlanID:        result.PlanID.String(),
		ActivityCount: result.ActivityCount,
	})
}

// GetPlan handles GET /plans/current requests, returning the user's plan
// with its activities ordered by date.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	plan, activities, err := h.schedulerService.GetStudyPlan(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := PlanDetailResponse{
		PlanID:     plan.ID.String(),
		ExamDate:   plan.ExamDate.Format("2006-01-02"),
		CreatedAt:  plan.CreatedAt,
		Activities: make([]ActivityResponse, 0, len(activities)),
	}
	for _, a := range activities {
		response.Activities = append(response.Activities, activityToResponse(a))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// ResetPlan handles DELETE /plans/current requests, removing the plan and
// all of its activities atomically.
func (h *PlanHandler) ResetPlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	result, err := h.schedulerService.ResetStudyPlan(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("study plan reset",
		slog.String("user_id", userID.String()),
		slog.Int64("deleted_activities", result.DeletedActivities),
		slog.Int64("deleted_plans", result.DeletedPlans))
	shared.RespondWithJSON(w, r, http.StatusOK, ResetPlanResponse{
		DeletedActivities: result.DeletedActivities,
		DeletedPlans:      result.DeletedPlans,
	})
}

// ReplaceActivity handles POST /activities/{id}/replace requests, rewriting
// one pending activity or every future pending activity of its type.
func (h *PlanHandler) ReplaceActivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	activityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	var req ReplaceActivityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	updated, err := h.schedulerService.ReplaceActivity(
		r.Context(),
		userID,
		activityID,
		domain.ActivityType(req.NewType),
		service.ReplaceScope(req.Scope),
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("activity replaced",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", activityID.String()),
		slog.String("new_type", req.NewType),
		slog.String("scope", req.Scope),
		slog.Int64("updated_count", updated))
	shared.RespondWithJSON(w, r, http.StatusOK, ReplaceActivityResponse{
		UpdatedCount: updated,
	})
}

// UpdateActivityStatus handles PATCH /activities/{id}/status requests,
// moving a pending activity to completed or skipped.
func (h *PlanHandler) UpdateActivityStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	activityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	var req UpdateActivityStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	err = h.schedulerService.UpdateActivityStatus(
		r.Context(),
		userID,
		activityID,
		domain.ActivityStatus(req.Status),
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("activity status updated",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", activityID.String()),
		slog.String("status", req.Status))
	w.WriteHeader(http.StatusNoContent)
}
