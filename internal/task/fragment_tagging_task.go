package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/spark-api/internal/domain"
	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/store"
)

// Common errors
var (
	ErrNilFragmentStore = errors.New("fragment store cannot be nil")
	ErrNilProvider      = errors.New("text provider cannot be nil")
	ErrNilLogger        = errors.New("logger cannot be nil")
	ErrEmptyFragmentID  = errors.New("fragment ID cannot be empty")
)

// fragmentTaggingPayload represents the serialized data stored in the task
type fragmentTaggingPayload struct {
	FragmentID uuid.UUID `json:"fragment_id"`
}

// FragmentTaggingTask implements the Task interface for labeling one
// fragment. The fragment is inserted with the pending sentinel tag before
// this task runs; when the task settles, the fragment carries either model
// labels or the fallback tag. A fragment deleted in the meantime makes the
// task a no-op.
type FragmentTaggingTask struct {
	id         uuid.UUID
	fragmentID uuid.UUID
	fragments  store.FragmentStore
	provider   generation.TextProvider
	logger     *slog.Logger
	status     TaskStatus
}

// NewFragmentTaggingTask creates a new fragment tagging task
func NewFragmentTaggingTask(
	fragmentID uuid.UUID,
	fragments store.FragmentStore,
	provider generation.TextProvider,
	logger *slog.Logger,
) (*FragmentTaggingTask, error) {
	if fragments == nil {
		return nil, ErrNilFragmentStore
	}
	if provider == nil {
		return nil, ErrNilProvider
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if fragmentID == uuid.Nil {
		return nil, ErrEmptyFragmentID
	}

	return &FragmentTaggingTask{
		id:         uuid.New(),
		fragmentID: fragmentID,
		fragments:  fragments,
		provider:   provider,
		logger:     logger.With("task_type", TaskTypeFragmentTagging, "fragment_id", fragmentID),
		status:     TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *FragmentTaggingTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *FragmentTaggingTask) Type() string {
	return TaskTypeFragmentTagging
}

// Payload returns the task data as a byte slice
func (t *FragmentTaggingTask) Payload() []byte {
	payload := fragmentTaggingPayload{
		FragmentID: t.fragmentID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *FragmentTaggingTask) Status() TaskStatus {
	return t.status
}

// Execute runs the tagging task: load the fragment, ask the model for
// labels, and replace the pending sentinel. Any failure after the fragment
// is confirmed to exist settles the tags to the fallback sentinel so the
// fragment never stays pending forever.
func (t *FragmentTaggingTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting fragment tagging task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	fragment, err := t.fragments.GetByID(ctx, t.fragmentID)
	if err != nil {
		if errors.Is(err, store.ErrFragmentNotFound) {
			// Deleted before the task ran; nothing to do.
			t.status = TaskStatusCompleted
			t.logger.Info("fragment no longer exists, skipping tagging")
			return nil
		}
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to retrieve fragment: %w", err)
	}

	systemPrompt, userPrompt := generation.BuildTaggingPrompt(fragment.Content)
	completion, err := t.provider.GenerateText(ctx, generation.TextRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	})
	if err != nil {
		t.settleFallback(ctx)
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to generate tags: %w", err)
	}

	tags := generation.ParseTags(completion)
	fragment.SetTags(tags)

	if err := t.fragments.UpdateTags(ctx, t.fragmentID, fragment.Tags); err != nil {
		if errors.Is(err, store.ErrFragmentNotFound) {
			t.status = TaskStatusCompleted
			t.logger.Info("fragment deleted during tagging, skipping update")
			return nil
		}
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to update fragment tags: %w", err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("fragment tagging task completed", "tags", fragment.Tags)
	return nil
}

// settleFallback replaces the pending sentinel with the fallback tag after a
// tagging failure. Errors here are logged only; the task already failed.
func (t *FragmentTaggingTask) settleFallback(ctx context.Context) {
	err := t.fragments.UpdateTags(ctx, t.fragmentID, []string{domain.FallbackTag})
	if err != nil && !errors.Is(err, store.ErrFragmentNotFound) {
		t.logger.Error("failed to settle fallback tag", "error", err)
	}
}

// FragmentTaggingTaskFactory builds tagging tasks with their shared
// dependencies bound.
type FragmentTaggingTaskFactory struct {
	fragments store.FragmentStore
	provider  generation.TextProvider
	logger    *slog.Logger
}

// NewFragmentTaggingTaskFactory creates a factory for fragment tagging tasks.
func NewFragmentTaggingTaskFactory(
	fragments store.FragmentStore,
	provider generation.TextProvider,
	logger *slog.Logger,
) *FragmentTaggingTaskFactory {
	return &FragmentTaggingTaskFactory{
		fragments: fragments,
		provider:  provider,
		logger:    logger,
	}
}

// CreateTask builds a tagging task for the given fragment.
func (f *FragmentTaggingTaskFactory) CreateTask(fragmentID uuid.UUID) (Task, error) {
	return NewFragmentTaggingTask(fragmentID, f.fragments, f.provider, f.logger)
}
