package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/api/shared"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/platform/logger"
	"github.com/premedly/studyplan-api/internal/service"
)

// defaultWeakestPageSize caps the ranking when the caller does not ask for a
// specific page size.
const defaultWeakestPageSize = 10

// MasteryHandler handles mastery-related HTTP requests
type MasteryHandler struct {
	masteryService service.MasteryService
	logger         *slog.Logger
}

// NewMasteryHandler creates a new MasteryHandler
func NewMasteryHandler(
	masteryService service.MasteryService,
	logger *slog.Logger,
) *MasteryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MasteryHandler")
	}

	return &MasteryHandler{
		masteryService: masteryService,
		logger:         logger.With(slog.String("component", "mastery_handler")),
	}
}

// GetWeakestCategories handles GET /mastery/weakest requests.
// Query parameters: section (optional exam section), page_size (optional).
func (h *MasteryHandler) GetWeakestCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	section := domain.Section(r.URL.Query().Get("section"))

	pageSize := defaultWeakestPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "page_size must be a positive integer")
			return
		}
		pageSize = parsed
	}

	results, err := h.masteryService.GetWeakestCategories(r.Context(), userID, section, pageSize)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]CategoryMasteryResponse, 0, len(results))
	for _, cm := range results {
		response = append(response, CategoryMasteryResponse{
			CategoryID: cm.CategoryID.String(),
			Concept:    cm.Concept,
			Mastery:    cm.Mastery,
			Seen:       cm.Seen,
		})
	}

	log.Debug("returned weakest categories",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// MarkCategoryCompleted handles POST /mastery/categories/{id}/complete
// requests, flagging the user's profile for that category as completed.
func (h *MasteryHandler) MarkCategoryCompleted(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.masteryService.MarkCategoryCompleted(r.Context(), userID, categoryID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("category marked completed",
		slog.String("user_id", userID.String()),
		slog.String("category_id", categoryID.String()))
	w.WriteHeader(http.StatusNoContent)
}
