package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/premedly/studyplan-api/internal/api/shared"
	"github.com/premedly/studyplan-api/internal/domain/progression"
	"github.com/premedly/studyplan-api/internal/platform/logger"
)

// ProgressionHandler handles clinic leveling and yield HTTP requests. The
// underlying computations are pure functions; the handler only parses input
// and shapes output.
type ProgressionHandler struct {
	logger *slog.Logger
}

// NewProgressionHandler creates a new ProgressionHandler
func NewProgressionHandler(logger *slog.Logger) *ProgressionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressionHandler")
	}

	return &ProgressionHandler{
		logger: logger.With(slog.String("component", "progression_handler")),
	}
}

// ComputeLevel handles POST /progression/level requests, computing the
// highest tier unlocked by the submitted room IDs.
func (h *ProgressionHandler) ComputeLevel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ComputeLevelRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	tier := progression.Level(req.UnlockedRoomIDs)

	log.Debug("computed level",
		slog.Int("room_count", len(req.UnlockedRoomIDs)),
		slog.String("level", tier.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, ComputeLevelResponse{
		Level:      tier.String(),
		LevelIndex: tier.Index(),
	})
}

// ComputeYield handles GET /progression/yield requests.
// Query parameters: level_index (0..6) and streak_days. Out-of-range level
// indexes fall back to the lowest tier's yields rather than erroring.
func (h *ProgressionHandler) ComputeYield(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	levelIndex := 0
	if raw := r.URL.Query().Get("level_index"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "level_index must be an integer")
			return
		}
		levelIndex = parsed
	}

	streakDays := 0
	if raw := r.URL.Query().Get("streak_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "streak_days must be a non-negative integer")
			return
		}
		streakDays = parsed
	}

	response := YieldResponse{
		PatientsPerDay: progression.PatientsPerDay(levelIndex),
		QualityOfCare:  progression.QualityOfCare(levelIndex),
		TotalQC:        progression.TotalQualityCoefficient(levelIndex, streakDays),
	}

	log.Debug("computed yield",
		slog.Int("level_index", levelIndex),
		slog.Int("streak_days", streakDays))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
