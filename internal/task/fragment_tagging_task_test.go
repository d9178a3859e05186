package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/spark-api/internal/domain"
	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/store"
)

// stubFragmentStore implements store.FragmentStore for testing.
type stubFragmentStore struct {
	fragment    *domain.Fragment
	getErr      error
	updateErr   error
	updatedTags []string
	updateCalls int
}

func (s *stubFragmentStore) Create(ctx context.Context, fragment *domain.Fragment) error {
	return nil
}

func (s *stubFragmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fragment, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.fragment, nil
}

func (s *stubFragmentStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Fragment, error) {
	return nil, nil
}

func (s *stubFragmentStore) List(ctx context.Context) ([]*domain.Fragment, error) {
	return nil, nil
}

func (s *stubFragmentStore) UpdateTags(ctx context.Context, id uuid.UUID, tags []string) error {
	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedTags = tags
	return nil
}

func (s *stubFragmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

// stubTextProvider implements generation.TextProvider for testing.
type stubTextProvider struct {
	completion string
	err        error
	lastReq    generation.TextRequest
}

func (p *stubTextProvider) GenerateText(ctx context.Context, req generation.TextRequest) (string, error) {
	p.lastReq = req
	if p.err != nil {
		return "", p.err
	}
	return p.completion, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFragment(t *testing.T) *domain.Fragment {
	t.Helper()
	fragment, err := domain.NewFragment("清晨的菜市场比咖啡馆更有生活气息")
	require.NoError(t, err)
	return fragment
}

func TestNewFragmentTaggingTask(t *testing.T) {
	fragments := &stubFragmentStore{}
	provider := &stubTextProvider{}
	logger := testLogger()
	fragmentID := uuid.New()

	t.Run("valid dependencies", func(t *testing.T) {
		task, err := NewFragmentTaggingTask(fragmentID, fragments, provider, logger)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID())
		assert.Equal(t, TaskTypeFragmentTagging, task.Type())
		assert.Equal(t, TaskStatusPending, task.Status())
		assert.Contains(t, string(task.Payload()), fragmentID.String())
	})

	t.Run("nil fragment store", func(t *testing.T) {
		_, err := NewFragmentTaggingTask(fragmentID, nil, provider, logger)
		assert.ErrorIs(t, err, ErrNilFragmentStore)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewFragmentTaggingTask(fragmentID, fragments, nil, logger)
		assert.ErrorIs(t, err, ErrNilProvider)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewFragmentTaggingTask(fragmentID, fragments, provider, nil)
		assert.ErrorIs(t, err, ErrNilLogger)
	})

	t.Run("empty fragment ID", func(t *testing.T) {
		_, err := NewFragmentTaggingTask(uuid.Nil, fragments, provider, logger)
		assert.ErrorIs(t, err, ErrEmptyFragmentID)
	})
}

func TestFragmentTaggingTaskExecute(t *testing.T) {
	t.Run("labels applied from completion", func(t *testing.T) {
		fragment := testFragment(t)
		fragments := &stubFragmentStore{fragment: fragment}
		provider := &stubTextProvider{completion: "美食, 生活"}

		task, err := NewFragmentTaggingTask(fragment.ID, fragments, provider, testLogger())
		require.NoError(t, err)

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, TaskStatusCompleted, task.Status())
		assert.Equal(t, []string{"美食", "生活"}, fragments.updatedTags)
		assert.NotEmpty(t, provider.lastReq.SystemPrompt)
		assert.Contains(t, provider.lastReq.UserPrompt, "菜市场")
	})

	t.Run("localized comma separator", func(t *testing.T) {
		fragment := testFragment(t)
		fragments := &stubFragmentStore{fragment: fragment}
		provider := &stubTextProvider{completion: "美食，生活，日常，多余"}

		task, err := NewFragmentTaggingTask(fragment.ID, fragments, provider, testLogger())
		require.NoError(t, err)

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, []string{"美食", "生活", "日常"}, fragments.updatedTags)
	})

	t.Run("blank completion settles fallback tag", func(t *testing.T) {
		fragment := testFragment(t)
		fragments := &stubFragmentStore{fragment: fragment}
		provider := &stubTextProvider{completion: "   "}

		task, err := NewFragmentTaggingTask(fragment.ID, fragments, provider, testLogger())
		require.NoError(t, err)

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, []string{domain.FallbackTag}, fragments.updatedTags)
	})

	t.Run("provider failure settles fallback tag and fails task", func(t *testing.T) {
		fragment := testFragment(t)
		fragments := &stubFragmentStore{fragment: fragment}
		provider := &stubTextProvider{err: errors.New("quota exhausted")}

		task, err := NewFragmentTaggingTask(fragment.ID, fragments, provider, testLogger())
		require.NoError(t, err)

		err = task.Execute(context.Background())
		require.Error(t, err)
		assert.Equal(t, TaskStatusFailed, task.Status())
		assert.Equal(t, []string{domain.FallbackTag}, fragments.updatedTags)
	})

	t.Run("fragment deleted before task runs", func(t *testing.T) {
		fragments := &stubFragmentStore{getErr: store.ErrFragmentNotFound}
		provider := &stubTextProvider{completion: "美食"}

		task, err := NewFragmentTaggingTask(uuid.New(), fragments, provider, testLogger())
		require.NoError(t, err)

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, TaskStatusCompleted, task.Status())
		assert.Zero(t, fragments.updateCalls)
	})

	t.Run("fragment deleted during tagging", func(t *testing.T) {
		fragment := testFragment(t)
		fragments := &stubFragmentStore{fragment: fragment, updateErr: store.ErrFragmentNotFound}
		provider := &stubTextProvider{completion: "美食"}

		task, err := NewFragmentTaggingTask(fragment.ID, fragments, provider, testLogger())
		require.NoError(t, err)

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, TaskStatusCompleted, task.Status())
	})

	t.Run("cancelled context fails early", func(t *testing.T) {
		fragment := testFragment(t)
		fragments := &stubFragmentStore{fragment: fragment}
		provider := &stubTextProvider{completion: "美食"}

		task, err := NewFragmentTaggingTask(fragment.ID, fragments, provider, testLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = task.Execute(ctx)
		require.Error(t, err)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})
}

func TestFragmentTaggingTaskFactory(t *testing.T) {
	factory := NewFragmentTaggingTaskFactory(&stubFragmentStore{}, &stubTextProvider{}, testLogger())

	task, err := factory.CreateTask(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, TaskTypeFragmentTagging, task.Type())

	_, err = factory.CreateTask(uuid.Nil)
	assert.ErrorIs(t, err, ErrEmptyFragmentID)
}
