package task

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// factoryFunc adapts a function to the TaskFactory interface.
type factoryFunc func(userID uuid.UUID, shares []CategoryShare) (Task, error)

func (f factoryFunc) CreateTask(userID uuid.UUID, shares []CategoryShare) (Task, error) {
	return f(userID, shares)
}

// submitterFunc adapts a function to the TaskSubmitter interface.
type submitterFunc func(ctx context.Context, task Task) error

func (f submitterFunc) Submit(ctx context.Context, task Task) error {
	return f(ctx, task)
}

func foldEvent(t *testing.T, userID uuid.UUID, shares []CategoryShare) *events.TaskRequestEvent {
	t.Helper()
	event, err := events.NewTaskRequestEvent(TaskTypeMasteryFold, masteryFoldPayload{
		UserID: userID,
		Shares: shares,
	})
	require.NoError(t, err)
	return event
}

func TestTaskFactoryEventHandler(t *testing.T) {
	userID := uuid.New()
	shares := testShares(2)

	t.Run("creates and submits a task", func(t *testing.T) {
		created, err := NewMasteryFoldTask(userID, shares, noopFolder(), slog.Default())
		require.NoError(t, err)

		var factoryUserID uuid.UUID
		var factoryShares []CategoryShare
		factory := factoryFunc(func(uid uuid.UUID, s []CategoryShare) (Task, error) {
			factoryUserID = uid
			factoryShares = s
			return created, nil
		})

		var submitted Task
		submitter := submitterFunc(func(_ context.Context, task Task) error {
			submitted = task
			return nil
		})

		handler := NewTaskFactoryEventHandler(factory, submitter, slog.Default())

		err = handler.HandleEvent(context.Background(), foldEvent(t, userID, shares))
		require.NoError(t, err)
		assert.Equal(t, userID, factoryUserID)
		assert.Equal(t, shares, factoryShares)
		require.NotNil(t, submitted)
		assert.Equal(t, created.ID(), submitted.ID())
	})

	t.Run("ignores other event types", func(t *testing.T) {
		factory := factoryFunc(func(uuid.UUID, []CategoryShare) (Task, error) {
			t.Fatal("factory should not be called")
			return nil, nil
		})
		submitter := submitterFunc(func(context.Context, Task) error {
			t.Fatal("submitter should not be called")
			return nil
		})

		handler := NewTaskFactoryEventHandler(factory, submitter, slog.Default())

		event, err := events.NewTaskRequestEvent("unrelated_event", map[string]string{})
		require.NoError(t, err)
		assert.NoError(t, handler.HandleEvent(context.Background(), event))
	})

	t.Run("corrupt payload", func(t *testing.T) {
		handler := NewTaskFactoryEventHandler(
			factoryFunc(func(uuid.UUID, []CategoryShare) (Task, error) { return nil, nil }),
			submitterFunc(func(context.Context, Task) error { return nil }),
			slog.Default(),
		)

		event := &events.TaskRequestEvent{
			ID:      uuid.New(),
			Type:    TaskTypeMasteryFold,
			Payload: []byte("{not json"),
		}
		err := handler.HandleEvent(context.Background(), event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal payload")
	})

	t.Run("factory failure", func(t *testing.T) {
		handler := NewTaskFactoryEventHandler(
			factoryFunc(func(uuid.UUID, []CategoryShare) (Task, error) {
				return nil, ErrEmptyShares
			}),
			submitterFunc(func(context.Context, Task) error { return nil }),
			slog.Default(),
		)

		err := handler.HandleEvent(context.Background(), foldEvent(t, userID, shares))
		assert.ErrorIs(t, err, ErrEmptyShares)
	})

	t.Run("submit failure", func(t *testing.T) {
		created, err := NewMasteryFoldTask(userID, shares, noopFolder(), slog.Default())
		require.NoError(t, err)

		handler := NewTaskFactoryEventHandler(
			factoryFunc(func(uuid.UUID, []CategoryShare) (Task, error) { return created, nil }),
			submitterFunc(func(context.Context, Task) error {
				return errors.New("queue is full")
			}),
			slog.Default(),
		)

		err = handler.HandleEvent(context.Background(), foldEvent(t, userID, shares))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to submit task")
	})
}
