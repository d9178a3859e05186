package task

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/spark-api/internal/events"
)

// mockTaskFactory implements TaskFactory for testing.
type mockTaskFactory struct {
	task       Task
	err        error
	lastCreate uuid.UUID
}

func (f *mockTaskFactory) CreateTask(fragmentID uuid.UUID) (Task, error) {
	f.lastCreate = fragmentID
	if f.err != nil {
		return nil, f.err
	}
	return f.task, nil
}

// mockSubmitter implements TaskSubmitter for testing.
type mockSubmitter struct {
	err       error
	submitted []Task
}

func (s *mockSubmitter) Submit(ctx context.Context, task Task) error {
	if s.err != nil {
		return s.err
	}
	s.submitted = append(s.submitted, task)
	return nil
}

func taggingEvent(t *testing.T, fragmentID string) *events.TaskRequestEvent {
	t.Helper()
	event, err := events.NewTaskRequestEvent(TaskTypeFragmentTagging, map[string]string{
		"fragment_id": fragmentID,
	})
	require.NoError(t, err)
	return event
}

func TestTaskFactoryEventHandler(t *testing.T) {
	t.Run("creates and submits task", func(t *testing.T) {
		fragmentID := uuid.New()
		factory := &mockTaskFactory{task: newMockTask(nil)}
		submitter := &mockSubmitter{}
		handler := NewTaskFactoryEventHandler(factory, submitter, testLogger())

		err := handler.HandleEvent(context.Background(), taggingEvent(t, fragmentID.String()))
		require.NoError(t, err)
		assert.Equal(t, fragmentID, factory.lastCreate)
		assert.Len(t, submitter.submitted, 1)
	})

	t.Run("ignores unrelated event types", func(t *testing.T) {
		factory := &mockTaskFactory{task: newMockTask(nil)}
		submitter := &mockSubmitter{}
		handler := NewTaskFactoryEventHandler(factory, submitter, testLogger())

		event, err := events.NewTaskRequestEvent("something_else", map[string]string{})
		require.NoError(t, err)

		require.NoError(t, handler.HandleEvent(context.Background(), event))
		assert.Empty(t, submitter.submitted)
	})

	t.Run("rejects malformed fragment ID", func(t *testing.T) {
		factory := &mockTaskFactory{task: newMockTask(nil)}
		submitter := &mockSubmitter{}
		handler := NewTaskFactoryEventHandler(factory, submitter, testLogger())

		err := handler.HandleEvent(context.Background(), taggingEvent(t, "not-a-uuid"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid fragment ID")
	})

	t.Run("propagates factory error", func(t *testing.T) {
		factory := &mockTaskFactory{err: errors.New("factory broken")}
		submitter := &mockSubmitter{}
		handler := NewTaskFactoryEventHandler(factory, submitter, testLogger())

		err := handler.HandleEvent(context.Background(), taggingEvent(t, uuid.New().String()))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create task")
	})

	t.Run("propagates submit error", func(t *testing.T) {
		factory := &mockTaskFactory{task: newMockTask(nil)}
		submitter := &mockSubmitter{err: errors.New("queue is full")}
		handler := NewTaskFactoryEventHandler(factory, submitter, testLogger())

		err := handler.HandleEvent(context.Background(), taggingEvent(t, uuid.New().String()))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to submit task")
	})
}
