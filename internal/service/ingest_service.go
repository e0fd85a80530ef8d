package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/events"
	"github.com/premedly/studyplan-api/internal/store"
	"github.com/premedly/studyplan-api/internal/task"
)

// subjectMappings resolves external practice-platform subject labels to
// internal concept categories. One external subject may correspond to
// several categories; the result counts are split across them.
var subjectMappings = map[string][]string{
	"General Chemistry":    {"Atomic Structure", "Chemical Bonding", "Thermodynamics"},
	"Organic Chemistry":    {"Functional Groups", "Reaction Mechanisms"},
	"Physics":              {"Mechanics", "Electricity and Magnetism", "Waves and Optics"},
	"Biochemistry":         {"Amino Acids and Proteins", "Metabolism", "Enzyme Kinetics"},
	"Biology":              {"Cell Biology", "Genetics", "Organ Systems"},
	"Psychology":           {"Learning and Memory", "Social Processes"},
	"Sociology":            {"Social Structures", "Social Processes"},
	"Critical Reasoning":   {"Passage Analysis", "Argument Evaluation"},
	"Reading Comprehension": {"Passage Analysis"},
}

// IngestResult reports the outcome of a practice-result ingest. A failing
// category write does not stop the others, so callers can distinguish
// "fully succeeded" from "partially succeeded, N of M".
type IngestResult struct {
	CreatedPulses int `json:"created_pulses"`
	FailedPulses  int `json:"failed_pulses"`
}

// IngestService converts external practice-session results into DataPulse
// records and hands the mastery update off to the background fold task.
type IngestService interface {
	// IngestPracticeResult creates one pulse per mapped category with the
	// counts split evenly (rounded) across them, then emits a fold event.
	// Returns ErrUnmappedSubject when the label resolves to no category.
	IngestPracticeResult(
		ctx context.Context,
		userID uuid.UUID,
		subjectLabel string,
		correct, incorrect int,
		note string,
	) (*IngestResult, error)

	// ListPulses returns a user's pulses newest first.
	ListPulses(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.DataPulse, error)
}

// IngestServiceError wraps errors from the ingest service with context.
type IngestServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for IngestServiceError.
func (e *IngestServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ingest service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("ingest service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *IngestServiceError) Unwrap() error {
	return e.Err
}

// ingestServiceImpl implements the IngestService interface
type ingestServiceImpl struct {
	categoryStore store.CategoryStore
	pulseStore    store.DataPulseStore
	eventEmitter  events.EventEmitter
	logger        *slog.Logger
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	categoryStore store.CategoryStore,
	pulseStore store.DataPulseStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (IngestService, error) {
	if categoryStore == nil {
		return nil, &IngestServiceError{
			Operation: "create_service",
			Message:   "categoryStore cannot be nil",
		}
	}
	if pulseStore == nil {
		return nil, &IngestServiceError{
			Operation: "create_service",
			Message:   "pulseStore cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &IngestServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ingestServiceImpl{
		categoryStore: categoryStore,
		pulseStore:    pulseStore,
		eventEmitter:  eventEmitter,
		logger:        logger.With("component", "ingest_service"),
	}, nil
}

// splitCount divides a count evenly across k categories using rounding.
// Each share is round(count / k); the sum of shares may differ from the
// original total by up to k-1. This approximation matches the upstream
// practice platforms and is kept deliberately.
func splitCount(count, k int) int {
	if k <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(k)))
}

// IngestPracticeResult converts one practice-session result into per-category
// pulses and emits a mastery fold event for the successfully created shares.
func (s *ingestServiceImpl) IngestPracticeResult(
	ctx context.Context,
	userID uuid.UUID,
	subjectLabel string,
	correct, incorrect int,
	note string,
) (*IngestResult, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "cannot be empty", domain.ErrValidation)
	}
	if correct < 0 || incorrect < 0 {
		return nil, domain.ErrInvalidCounts
	}

	concepts, ok := subjectMappings[subjectLabel]
	if !ok || len(concepts) == 0 {
		s.logger.Warn("unmapped subject label",
			"subject", subjectLabel,
			"user_id", userID)
		return nil, ErrUnmappedSubject
	}

	k := len(concepts)
	positiveShare := splitCount(correct, k)
	negativeShare := splitCount(incorrect, k)
	splitNote := fmt.Sprintf("split 1/%d from %q", k, subjectLabel)
	if note != "" {
		splitNote = fmt.Sprintf("%s: %s", splitNote, note)
	}

	result := &IngestResult{}
	var shares []task.CategoryShare

	for _, concept := range concepts {
		category, err := s.categoryStore.GetByConcept(ctx, concept)
		if err != nil {
			s.logger.Error("failed to resolve mapped category, skipping",
				"error", err,
				"subject", subjectLabel,
				"concept", concept,
				"user_id", userID)
			result.FailedPulses++
			continue
		}

		pulse, err := domain.NewDataPulse(
			userID,
			concept,
			domain.PulseLevelConcept,
			subjectLabel,
			positiveShare,
			negativeShare,
			splitNote,
		)
		if err != nil {
			s.logger.Error("failed to build pulse, skipping",
				"error", err,
				"concept", concept,
				"user_id", userID)
			result.FailedPulses++
			continue
		}

		if err := s.pulseStore.Create(ctx, pulse); err != nil {
			s.logger.Error("failed to persist pulse, skipping",
				"error", err,
				"concept", concept,
				"user_id", userID)
			result.FailedPulses++
			continue
		}

		result.CreatedPulses++
		shares = append(shares, task.CategoryShare{
			CategoryID: category.ID,
			Positive:   positiveShare,
			Negative:   negativeShare,
		})
	}

	if result.CreatedPulses == 0 {
		return result, &IngestServiceError{
			Operation: "ingest_practice_result",
			Message:   fmt.Sprintf("all %d category writes failed", k),
			Err:       store.ErrTransactionFailed,
		}
	}

	// Carry the share counts in the event payload so the fold task never
	// re-reads or mutates the pulses.
	payload := struct {
		UserID uuid.UUID            `json:"user_id"`
		Shares []task.CategoryShare `json:"shares"`
	}{
		UserID: userID,
		Shares: shares,
	}

	event, err := events.NewTaskRequestEvent(task.TaskTypeMasteryFold, payload)
	if err != nil {
		s.logger.Error("failed to create mastery fold event",
			"error", err,
			"user_id", userID)
		return result, &IngestServiceError{
			Operation: "ingest_practice_result",
			Message:   "failed to create fold event",
			Err:       err,
		}
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit mastery fold event",
			"error", err,
			"user_id", userID,
			"event_id", event.ID)
		return result, &IngestServiceError{
			Operation: "ingest_practice_result",
			Message:   "failed to emit fold event",
			Err:       err,
		}
	}

	s.logger.Info("practice result ingested",
		"user_id", userID,
		"subject", subjectLabel,
		"created_pulses", result.CreatedPulses,
		"failed_pulses", result.FailedPulses,
		"event_id", event.ID)
	return result, nil
}

// ListPulses returns a user's pulses newest first.
func (s *ingestServiceImpl) ListPulses(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.DataPulse, error) {
	pulses, err := s.pulseStore.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list pulses",
			"error", err,
			"user_id", userID)
		return nil, &IngestServiceError{
			Operation: "list_pulses",
			Message:   "failed to list pulses",
			Err:       err,
		}
	}
	return pulses, nil
}

// mappedConcepts returns the concept categories an external subject label
// resolves to. Exposed for tests of the mapping table.
func mappedConcepts(subjectLabel string) []string {
	return subjectMappings[subjectLabel]
}
