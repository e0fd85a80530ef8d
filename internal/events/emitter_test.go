package events

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handlerFunc adapts a function to the EventHandler interface.
type handlerFunc func(ctx context.Context, event *TaskRequestEvent) error

func (f handlerFunc) HandleEvent(ctx context.Context, event *TaskRequestEvent) error {
	return f(ctx, event)
}

func TestNewTaskRequestEvent(t *testing.T) {
	event, err := NewTaskRequestEvent("mastery_fold", map[string]int{"positive": 3})
	require.NoError(t, err)

	assert.Equal(t, "mastery_fold", event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var payload map[string]int
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, 3, payload["positive"])
}

func TestNewTaskRequestEventUnmarshalablePayload(t *testing.T) {
	_, err := NewTaskRequestEvent("mastery_fold", func() {})
	require.Error(t, err)
}

func TestEmitEventDispatchesToAllHandlers(t *testing.T) {
	emitter := NewInMemoryEventEmitter(slog.Default())

	var calls []string
	emitter.RegisterHandler(handlerFunc(func(_ context.Context, event *TaskRequestEvent) error {
		calls = append(calls, "first:"+event.Type)
		return nil
	}))
	emitter.RegisterHandler(handlerFunc(func(_ context.Context, event *TaskRequestEvent) error {
		calls = append(calls, "second:"+event.Type)
		return nil
	}))

	event, err := NewTaskRequestEvent("mastery_fold", struct{}{})
	require.NoError(t, err)

	require.NoError(t, emitter.EmitEvent(context.Background(), event))
	assert.Equal(t, []string{"first:mastery_fold", "second:mastery_fold"}, calls)
}

func TestEmitEventNoHandlers(t *testing.T) {
	emitter := NewInMemoryEventEmitter(slog.Default())

	event, err := NewTaskRequestEvent("mastery_fold", struct{}{})
	require.NoError(t, err)

	// An event with nobody listening is logged, not an error.
	assert.NoError(t, emitter.EmitEvent(context.Background(), event))
}

func TestEmitEventReturnsFirstError(t *testing.T) {
	emitter := NewInMemoryEventEmitter(slog.Default())

	firstErr := errors.New("first handler failed")
	secondErr := errors.New("second handler failed")
	thirdCalled := false

	emitter.RegisterHandler(handlerFunc(func(context.Context, *TaskRequestEvent) error {
		return firstErr
	}))
	emitter.RegisterHandler(handlerFunc(func(context.Context, *TaskRequestEvent) error {
		return secondErr
	}))
	emitter.RegisterHandler(handlerFunc(func(context.Context, *TaskRequestEvent) error {
		thirdCalled = true
		return nil
	}))

	event, err := NewTaskRequestEvent("mastery_fold", struct{}{})
	require.NoError(t, err)

	err = emitter.EmitEvent(context.Background(), event)
	assert.ErrorIs(t, err, firstErr)
	assert.True(t, thirdCalled, "later handlers should still run after a failure")
}
