package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// trackedTask pairs a task with its store-side bookkeeping.
type trackedTask struct {
	task      Task
	status    TaskStatus
	errorMsg  string
	updatedAt time.Time
}

// InMemoryTaskStore is a TaskStore that keeps task state in process memory.
// Tagging tasks carry no durable value, so losing them on restart is
// acceptable; a fragment that never got tagged keeps its pending sentinel.
type InMemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*trackedTask
}

// NewInMemoryTaskStore creates an empty in-memory task store.
func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		tasks: make(map[uuid.UUID]*trackedTask),
	}
}

var _ TaskStore = (*InMemoryTaskStore)(nil)

// SaveTask implements TaskStore.SaveTask
func (s *InMemoryTaskStore) SaveTask(_ context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID()] = &trackedTask{
		task:      task,
		status:    TaskStatusPending,
		updatedAt: time.Now(),
	}
	return nil
}

// UpdateTaskStatus implements TaskStore.UpdateTaskStatus. Unknown task IDs
// are ignored rather than treated as errors.
func (s *InMemoryTaskStore) UpdateTaskStatus(
	_ context.Context,
	taskID uuid.UUID,
	status TaskStatus,
	errorMsg string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracked, ok := s.tasks[taskID]
	if !ok {
		return nil
	}

	tracked.status = status
	tracked.errorMsg = errorMsg
	tracked.updatedAt = time.Now()

	// Finished tasks are dropped so the map does not grow unbounded.
	if status == TaskStatusCompleted {
		delete(s.tasks, taskID)
	}

	return nil
}

// GetPendingTasks implements TaskStore.GetPendingTasks
func (s *InMemoryTaskStore) GetPendingTasks(_ context.Context) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []Task
	for _, tracked := range s.tasks {
		if tracked.status == TaskStatusPending {
			pending = append(pending, tracked.task)
		}
	}
	return pending, nil
}

// GetProcessingTasks implements TaskStore.GetProcessingTasks
func (s *InMemoryTaskStore) GetProcessingTasks(_ context.Context, olderThan time.Duration) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().Add(-olderThan)

	var processing []Task
	for _, tracked := range s.tasks {
		if tracked.status != TaskStatusProcessing {
			continue
		}
		if olderThan > 0 && tracked.updatedAt.After(cutoff) {
			continue
		}
		processing = append(processing, tracked.task)
	}
	return processing, nil
}

// StatusOf reports the tracked status of a task, for tests and monitoring.
func (s *InMemoryTaskStore) StatusOf(taskID uuid.UUID) (TaskStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tracked, ok := s.tasks[taskID]
	if !ok {
		return "", false
	}
	return tracked.status, true
}
