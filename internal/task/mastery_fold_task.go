package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNilMasteryService = errors.New("mastery service cannot be nil")
	ErrNilLogger         = errors.New("logger cannot be nil")
	ErrEmptyUserID       = errors.New("user ID cannot be empty")
	ErrEmptyShares       = errors.New("fold payload must contain at least one share")
	ErrUnknownTaskType   = errors.New("unknown task type")
)

// MasteryFolder defines the service operations the fold task needs.
// Implemented by service.MasteryService.
type MasteryFolder interface {
	// FoldCounts increments a user's evidence counters for a category and
	// recomputes the category's mastery score atomically.
	FoldCounts(ctx context.Context, userID, categoryID uuid.UUID, positive, negative int) error
}

// CategoryShare is one category's slice of an ingested pulse's counts.
type CategoryShare struct {
	CategoryID uuid.UUID `json:"category_id"`
	Positive   int       `json:"positive"`
	Negative   int       `json:"negative"`
}

// masteryFoldPayload is the serialized task data. It carries the share
// counts so pulses are never re-read or mutated after ingest.
type masteryFoldPayload struct {
	UserID uuid.UUID       `json:"user_id"`
	Shares []CategoryShare `json:"shares"`
}

// MasteryFoldTask implements the Task interface for folding an ingested
// pulse's evidence counts into the user's knowledge profiles.
type MasteryFoldTask struct {
	id     uuid.UUID
	userID uuid.UUID
	shares []CategoryShare
	folder MasteryFolder
	logger *slog.Logger
	status TaskStatus
}

// NewMasteryFoldTask creates a new mastery fold task for the given user and
// category shares.
func NewMasteryFoldTask(
	userID uuid.UUID,
	shares []CategoryShare,
	folder MasteryFolder,
	logger *slog.Logger,
) (*MasteryFoldTask, error) {
	if folder == nil {
		return nil, ErrNilMasteryService
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}
	if len(shares) == 0 {
		return nil, ErrEmptyShares
	}

	return &MasteryFoldTask{
		id:     uuid.New(),
		userID: userID,
		shares: shares,
		folder: folder,
		logger: logger.With("task_type", TaskTypeMasteryFold, "user_id", userID),
		status: TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *MasteryFoldTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *MasteryFoldTask) Type() string {
	return TaskTypeMasteryFold
}

// Payload returns the task data as a byte slice
func (t *MasteryFoldTask) Payload() []byte {
	payload := masteryFoldPayload{
		UserID: t.userID,
		Shares: t.shares,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *MasteryFoldTask) Status() TaskStatus {
	return t.status
}

// Execute folds each category share into the user's knowledge profiles.
// A failing share does not stop the remaining shares; the task fails at the
// end with the per-share errors joined, so retries re-apply only via the
// idempotent service path.
func (t *MasteryFoldTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting mastery fold task", "share_count", len(t.shares))

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	var errs []error
	for _, share := range t.shares {
		err := t.folder.FoldCounts(ctx, t.userID, share.CategoryID, share.Positive, share.Negative)
		if err != nil {
			t.logger.Error("failed to fold category share",
				"category_id", share.CategoryID,
				"error", err)
			errs = append(errs, fmt.Errorf("category %s: %w", share.CategoryID, err))
			continue
		}
	}

	if len(errs) > 0 {
		t.status = TaskStatusFailed
		return fmt.Errorf("mastery fold failed for %d of %d shares: %w",
			len(errs), len(t.shares), errors.Join(errs...))
	}

	t.status = TaskStatusCompleted
	t.logger.Info("mastery fold task completed", "share_count", len(t.shares))
	return nil
}

// MasteryFoldTaskFactory creates mastery fold tasks and rehydrates them
// from persisted payloads during recovery.
type MasteryFoldTaskFactory struct {
	folder MasteryFolder
	logger *slog.Logger
}

// NewMasteryFoldTaskFactory creates a new factory bound to the given
// mastery service.
func NewMasteryFoldTaskFactory(folder MasteryFolder, logger *slog.Logger) *MasteryFoldTaskFactory {
	return &MasteryFoldTaskFactory{
		folder: folder,
		logger: logger,
	}
}

// CreateTask builds a new fold task for the given user and shares.
func (f *MasteryFoldTaskFactory) CreateTask(
	userID uuid.UUID,
	shares []CategoryShare,
) (Task, error) {
	return NewMasteryFoldTask(userID, shares, f.folder, f.logger)
}

// Rehydrate implements the Rehydrator interface, rebuilding an executable
// fold task from a stored row. The stored task ID is preserved so status
// updates hit the right row.
func (f *MasteryFoldTaskFactory) Rehydrate(
	id uuid.UUID,
	taskType string,
	payload []byte,
) (Task, error) {
	if taskType != TaskTypeMasteryFold {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTaskType, taskType)
	}

	var p masteryFoldPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fold payload: %w", err)
	}

	t, err := NewMasteryFoldTask(p.UserID, p.Shares, f.folder, f.logger)
	if err != nil {
		return nil, err
	}
	t.id = id
	return t, nil
}

// Ensure MasteryFoldTaskFactory implements Rehydrator
var _ Rehydrator = (*MasteryFoldTaskFactory)(nil)
