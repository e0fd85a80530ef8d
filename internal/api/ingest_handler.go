package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/api/shared"
	"github.com/premedly/studyplan-api/internal/platform/logger"
	"github.com/premedly/studyplan-api/internal/service"
)

// IngestHandler handles practice-result ingestion HTTP requests
type IngestHandler struct {
	ingestService service.IngestService
	logger        *slog.Logger
}

// NewIngestHandler creates a new IngestHandler
func NewIngestHandler(
	ingestService service.IngestService,
	logger *slog.Logger,
) *IngestHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for IngestHandler")
	}

	return &IngestHandler{
		ingestService: ingestService,
		logger:        logger.With(slog.String("component", "ingest_handler")),
	}
}

// IngestPracticeResult handles POST /pulses requests from authenticated
// users submitting their own practice results.
func (h *IngestHandler) IngestPracticeResult(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req IngestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	h.ingest(w, r, userID, req.SubjectLabel, req.Correct, req.Incorrect, req.Note)
}

// IngestSourceResult handles POST /ingest/source requests from external
// practice platforms. The source middleware has already verified the shared
// secret; the platform asserts the target user in the body.
func (h *IngestHandler) IngestSourceResult(w http.ResponseWriter, r *http.Request) {
	var req SourceIngestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	h.ingest(w, r, userID, req.SubjectLabel, req.Correct, req.Incorrect, req.Note)
}

// ingest runs the shared ingest path and writes the result. Partial success
// still reports 201 with the per-record counts so callers can distinguish
// "fully succeeded" from "partially succeeded, N of M".
func (h *IngestHandler) ingest(
	w http.ResponseWriter,
	r *http.Request,
	userID uuid.UUID,
	subjectLabel string,
	correct, incorrect int,
	note string,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	result, err := h.ingestService.IngestPracticeResult(
		r.Context(),
		userID,
		subjectLabel,
		correct,
		incorrect,
		note,
	)
	if err != nil && (result == nil || result.CreatedPulses == 0) {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("practice result ingested",
		slog.String("user_id", userID.String()),
		slog.String("subject", subjectLabel),
		slog.Int("created_pulses", result.CreatedPulses),
		slog.Int("failed_pulses", result.FailedPulses))
	shared.RespondWithJSON(w, r, http.StatusCreated, IngestResponse{
		CreatedPulses: result.CreatedPulses,
		FailedPulses:  result.FailedPulses,
	})
}

// ListPulses handles GET /pulses requests, returning the authenticated
// user's evidence records newest first.
func (h *IngestHandler) ListPulses(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		offset = parsed
	}

	pulses, err := h.ingestService.ListPulses(r.Context(), userID, limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]PulseResponse, 0, len(pulses))
	for _, p := range pulses {
		response = append(response, pulseToResponse(p))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
