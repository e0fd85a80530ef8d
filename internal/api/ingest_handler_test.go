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

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/service"
)

// mockIngestService is a mock implementation of the IngestService interface
type mockIngestService struct {
	ingestFn     func(ctx context.Context, userID uuid.UUID, subjectLabel string, correct, incorrect int, note string) (*service.IngestResult, error)
	listPulsesFn func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.DataPulse, error)
}

func (m *mockIngestService) IngestPracticeResult(
	ctx context.Context,
	userID uuid.UUID,
	subjectLabel string,
	correct, incorrect int,
	note string,
) (*service.IngestResult, error) {
	return m.ingestFn(ctx, userID, subjectLabel, correct, incorrect, note)
}

func (m *mockIngestService) ListPulses(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.DataPulse, error) {
	return m.listPulsesFn(ctx, userID, limit, offset)
}

func TestIngestPracticeResultHTTP(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &mockIngestService{
			ingestFn: func(_ context.Context, uid uuid.UUID, label string, correct, incorrect int, note string) (*service.IngestResult, error) {
				if uid != userID {
					t.Errorf("Expected user %s, got %s", userID, uid)
				}
				if label != "General Chemistry" || correct != 10 || incorrect != 2 {
					t.Errorf("Unexpected arguments: %s %d/%d", label, correct, incorrect)
				}
				return &service.IngestResult{CreatedPulses: 3, FailedPulses: 0}, nil
			},
		}
		handler := NewIngestHandler(svc, slog.Default())

		body := `{"subject_label":"General Chemistry","correct":10,"incorrect":2}`
		req := httptest.NewRequest(http.MethodPost, "/api/pulses", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.IngestPracticeResult(rr, withUserID(req, userID))

		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", rr.Code)
		}

		var resp IngestResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.CreatedPulses != 3 || resp.FailedPulses != 0 {
			t.Errorf("Unexpected counts: %+v", resp)
		}
	})

	t.Run("partial success still reports 201", func(t *testing.T) {
		svc := &mockIngestService{
			ingestFn: func(context.Context, uuid.UUID, string, int, int, string) (*service.IngestResult, error) {
				return &service.IngestResult{CreatedPulses: 2, FailedPulses: 1},
					&service.IngestServiceError{
						Operation: "ingest_practice_result",
						Message:   "1 pulse failed",
					}
			},
		}
		handler := NewIngestHandler(svc, slog.Default())

		body := `{"subject_label":"Physics","correct":4,"incorrect":4}`
		req := httptest.NewRequest(http.MethodPost, "/api/pulses", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.IngestPracticeResult(rr, withUserID(req, userID))

		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", rr.Code)
		}

		var resp IngestResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.CreatedPulses != 2 || resp.FailedPulses != 1 {
			t.Errorf("Unexpected counts: %+v", resp)
		}
	})

	t.Run("unmapped subject", func(t *testing.T) {
		svc := &mockIngestService{
			ingestFn: func(context.Context, uuid.UUID, string, int, int, string) (*service.IngestResult, error) {
				return nil, service.ErrUnmappedSubject
			},
		}
		handler := NewIngestHandler(svc, slog.Default())

		body := `{"subject_label":"Astrology","correct":1,"incorrect":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/pulses", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.IngestPracticeResult(rr, withUserID(req, userID))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("missing subject label", func(t *testing.T) {
		handler := NewIngestHandler(&mockIngestService{}, slog.Default())

		body := `{"correct":1,"incorrect":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/pulses", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.IngestPracticeResult(rr, withUserID(req, userID))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("negative counts rejected by validation", func(t *testing.T) {
		handler := NewIngestHandler(&mockIngestService{}, slog.Default())

		body := `{"subject_label":"Physics","correct":-1,"incorrect":0}`
		req := httptest.NewRequest(http.MethodPost, "/api/pulses", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.IngestPracticeResult(rr, withUserID(req, userID))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})

	t.Run("missing user ID", func(t *testing.T) {
		handler := NewIngestHandler(&mockIngestService{}, slog.Default())

		body := `{"subject_label":"Physics","correct":1,"incorrect":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/pulses", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.IngestPracticeResult(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rr.Code)
		}
	})
}

func TestIngestSourceResultHTTP(t *testing.T) {
	targetUser := uuid.New()

	t.Run("platform asserts the target user", func(t *testing.T) {
		svc := &mockIngestService{
			ingestFn: func(_ context.Context, uid uuid.UUID, _ string, _, _ int, _ string) (*service.IngestResult, error) {
				if uid != targetUser {
					t.Errorf("Expected user %s, got %s", targetUser, uid)
				}
				return &service.IngestResult{CreatedPulses: 1}, nil
			},
		}
		handler := NewIngestHandler(svc, slog.Default())

		body := `{"user_id":"` + targetUser.String() + `","subject_label":"CARS","correct":5,"incorrect":3}`
		req := httptest.NewRequest(http.MethodPost, "/api/ingest/source", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.IngestSourceResult(rr, req)

		if rr.Code != http.StatusCreated {
			t.Errorf("Expected status 201, got %d", rr.Code)
		}
	})

	t.Run("missing user ID in body", func(t *testing.T) {
		handler := NewIngestHandler(&mockIngestService{}, slog.Default())

		body := `{"subject_label":"CARS","correct":5,"incorrect":3}`
		req := httptest.NewRequest(http.MethodPost, "/api/ingest/source", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.IngestSourceResult(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})
}

func TestListPulsesHTTP(t *testing.T) {
	userID := uuid.New()

	t.Run("returns pulses", func(t *testing.T) {
		pulse := &domain.DataPulse{
			ID:        uuid.New(),
			UserID:    userID,
			Name:      "Thermodynamics",
			Level:     domain.PulseLevelConcept,
			Source:    "qbank",
			Weight:    1,
			Positive:  4,
			Negative:  1,
			CreatedAt: time.Now().UTC(),
		}
		svc := &mockIngestService{
			listPulsesFn: func(_ context.Context, uid uuid.UUID, limit, offset int) ([]*domain.DataPulse, error) {
				if limit != 20 || offset != 40 {
					t.Errorf("Expected limit 20 offset 40, got %d/%d", limit, offset)
				}
				return []*domain.DataPulse{pulse}, nil
			},
		}
		handler := NewIngestHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/api/pulses?limit=20&offset=40", nil)
		rr := httptest.NewRecorder()
		handler.ListPulses(rr, withUserID(req, userID))

		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}

		var resp []PulseResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp) != 1 || resp[0].Name != "Thermodynamics" {
			t.Errorf("Unexpected response: %+v", resp)
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		handler := NewIngestHandler(&mockIngestService{}, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/api/pulses?limit=-5", nil)
		rr := httptest.NewRecorder()
		handler.ListPulses(rr, withUserID(req, userID))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})
}
