package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/spark-api/internal/domain"
	"github.com/phrazzld/spark-api/internal/store"
)

// mockDBTX implements store.DBTX for testing
type mockDBTX struct{}

func (m *mockDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (m *mockDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

// fakeScanner feeds canned column values into scanFragment/scanCopy.
type fakeScanner struct {
	values []any
	err    error
}

func (f *fakeScanner) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *uuid.UUID:
			*target = f.values[i].(uuid.UUID)
		case *string:
			*target = f.values[i].(string)
		case *[]byte:
			*target = f.values[i].([]byte)
		case *time.Time:
			*target = f.values[i].(time.Time)
		}
	}
	return nil
}

func TestNewPostgresFragmentStore(t *testing.T) {
	t.Run("nil_db_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPostgresFragmentStore(nil, slog.Default())
		})
	})

	t.Run("nil_logger_uses_default", func(t *testing.T) {
		s := NewPostgresFragmentStore(&mockDBTX{}, nil)
		assert.NotNil(t, s)
		assert.NotNil(t, s.logger)
	})
}

func TestNewPostgresCopyStore(t *testing.T) {
	t.Run("nil_db_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPostgresCopyStore(nil, slog.Default())
		})
	})

	t.Run("nil_logger_uses_default", func(t *testing.T) {
		s := NewPostgresCopyStore(&mockDBTX{}, nil)
		assert.NotNil(t, s)
		assert.NotNil(t, s.logger)
	})
}

func TestNewPostgresSettingsStore(t *testing.T) {
	t.Run("nil_db_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPostgresSettingsStore(nil, slog.Default())
		})
	})

	t.Run("nil_logger_uses_default", func(t *testing.T) {
		s := NewPostgresSettingsStore(&mockDBTX{}, nil)
		assert.NotNil(t, s)
		assert.NotNil(t, s.logger)
	})
}

func TestFragmentStoreCreateValidation(t *testing.T) {
	s := NewPostgresFragmentStore(&mockDBTX{}, slog.Default())

	// Invalid fragments must be rejected before any SQL runs.
	err := s.Create(context.Background(), &domain.Fragment{})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestCopyStoreCreateValidation(t *testing.T) {
	s := NewPostgresCopyStore(&mockDBTX{}, slog.Default())

	err := s.Create(context.Background(), &domain.GeneratedCopy{})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestSettingsStoreSaveValidation(t *testing.T) {
	s := NewPostgresSettingsStore(&mockDBTX{}, slog.Default())

	err := s.Save(context.Background(), domain.Settings{AIProvider: "bogus"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestScanFragment(t *testing.T) {
	id := uuid.New()
	created := time.Now().UTC().Truncate(time.Second)

	t.Run("valid_row", func(t *testing.T) {
		scanner := &fakeScanner{values: []any{
			id,
			"早晨的菜市场",
			[]byte(`["美食","生活"]`),
			created,
		}}

		fragment, err := scanFragment(scanner)
		require.NoError(t, err)
		assert.Equal(t, id, fragment.ID)
		assert.Equal(t, "早晨的菜市场", fragment.Content)
		assert.Equal(t, []string{"美食", "生活"}, fragment.Tags)
		assert.Equal(t, created, fragment.CreatedAt)
	})

	t.Run("malformed_tags_json", func(t *testing.T) {
		scanner := &fakeScanner{values: []any{
			id,
			"content",
			[]byte(`not json`),
			created,
		}}

		_, err := scanFragment(scanner)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshal fragment tags")
	})

	t.Run("scan_error_propagates", func(t *testing.T) {
		scanner := &fakeScanner{err: sql.ErrNoRows}

		_, err := scanFragment(scanner)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestScanCopy(t *testing.T) {
	id := uuid.New()
	created := time.Now().UTC().Truncate(time.Second)

	configJSON := []byte(`{"platform":"xiaohongshu","niche":"美食","style_mode":"preset","with_image":true}`)
	auditJSON := []byte(`{"headline":8,"quality":7,"emotion":6,"trending":5,"viralPotential":7,"overall":7,"suggestions":["加一个钩子"],"pros":["口语化"],"sensitiveWords":[]}`)

	t.Run("valid_row", func(t *testing.T) {
		scanner := &fakeScanner{values: []any{
			id,
			configJSON,
			"正文内容",
			auditJSON,
			"data:image/png;base64,AAAA",
			created,
		}}

		copy, err := scanCopy(scanner)
		require.NoError(t, err)
		assert.Equal(t, id, copy.ID)
		assert.Equal(t, domain.Platform("xiaohongshu"), copy.Config.Platform)
		assert.Equal(t, "正文内容", copy.Content)
		assert.Equal(t, 7, copy.Audit.Overall)
		assert.Equal(t, []string{"加一个钩子"}, copy.Audit.Suggestions)
		assert.Equal(t, "data:image/png;base64,AAAA", copy.ImageDataURI)
	})

	t.Run("malformed_audit_json", func(t *testing.T) {
		scanner := &fakeScanner{values: []any{
			id,
			configJSON,
			"正文内容",
			[]byte(`{broken`),
			"",
			created,
		}}

		_, err := scanCopy(scanner)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshal audit score")
	})
}
