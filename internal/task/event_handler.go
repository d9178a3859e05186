package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/spark-api/internal/events"
)

// TaskFactory builds a task for a fragment ID. Implemented by
// FragmentTaggingTaskFactory.
type TaskFactory interface {
	CreateTask(fragmentID uuid.UUID) (Task, error)
}

// TaskSubmitter accepts tasks for background execution. Implemented by
// TaskRunner.
type TaskSubmitter interface {
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler implements the events.EventHandler interface,
// turning fragment tagging events into queued tasks.
type TaskFactoryEventHandler struct {
	taskFactory TaskFactory
	taskRunner  TaskSubmitter
	logger      *slog.Logger
}

// NewTaskFactoryEventHandler creates a new event handler that uses the given
// task factory to create tasks, and submits them to the provided task runner.
func NewTaskFactoryEventHandler(
	taskFactory TaskFactory,
	taskRunner TaskSubmitter,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		taskFactory: taskFactory,
		taskRunner:  taskRunner,
		logger:      logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent processes events by creating and submitting tasks.
func (h *TaskFactoryEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != TaskTypeFragmentTagging {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload struct {
		FragmentID string `json:"fragment_id"`
	}

	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	fragmentID, err := uuid.Parse(payload.FragmentID)
	if err != nil {
		h.logger.Error("invalid fragment ID",
			"error", err,
			"fragment_id", payload.FragmentID,
			"event_id", event.ID)
		return fmt.Errorf("invalid fragment ID: %w", err)
	}

	newTask, err := h.taskFactory.CreateTask(fragmentID)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"fragment_id", fragmentID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.taskRunner.Submit(ctx, newTask); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", newTask.ID(),
			"fragment_id", fragmentID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted",
		"task_id", newTask.ID(),
		"fragment_id", fragmentID,
		"event_id", event.ID)
	return nil
}

// Ensure TaskFactoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)
