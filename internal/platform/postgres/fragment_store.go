package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/spark-api/internal/domain"
	"github.com/phrazzld/spark-api/internal/platform/logger"
	"github.com/phrazzld/spark-api/internal/store"
)

// PostgresFragmentStore implements the store.FragmentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFragmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFragmentStore creates a new PostgreSQL implementation of the
// FragmentStore interface. If logger is nil, a default logger will be used.
func NewPostgresFragmentStore(db store.DBTX, logger *slog.Logger) *PostgresFragmentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFragmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "fragment_store")),
	}
}

// Ensure PostgresFragmentStore implements store.FragmentStore
var _ store.FragmentStore = (*PostgresFragmentStore)(nil)

// Create implements store.FragmentStore.Create
func (s *PostgresFragmentStore) Create(ctx context.Context, fragment *domain.Fragment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := fragment.Validate(); err != nil {
		log.Warn("fragment validation failed during create",
			slog.String("error", err.Error()),
			slog.String("fragment_id", fragment.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tagsJSON, err := json.Marshal(fragment.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal fragment tags: %w", err)
	}

	query := `
		INSERT INTO fragments (id, content, tags, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = s.db.ExecContext(ctx, query, fragment.ID, fragment.Content, tagsJSON, fragment.CreatedAt)
	if err != nil {
		log.Error("failed to create fragment",
			slog.String("error", err.Error()),
			slog.String("fragment_id", fragment.ID.String()))
		return err
	}

	log.Debug("fragment created",
		slog.String("fragment_id", fragment.ID.String()))
	return nil
}

// GetByID implements store.FragmentStore.GetByID
func (s *PostgresFragmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fragment, error) {
	query := `
		SELECT id, content, tags, created_at
		FROM fragments
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, id)

	fragment, err := scanFragment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFragmentNotFound
		}
		return nil, err
	}

	return fragment, nil
}

// GetByIDs implements store.FragmentStore.GetByIDs
func (s *PostgresFragmentStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Fragment, error) {
	fragments := make([]*domain.Fragment, 0, len(ids))
	for _, id := range ids {
		fragment, err := s.GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				// A fragment deleted since selection is silently skipped.
				continue
			}
			return nil, err
		}
		fragments = append(fragments, fragment)
	}
	return fragments, nil
}

// List implements store.FragmentStore.List
func (s *PostgresFragmentStore) List(ctx context.Context) ([]*domain.Fragment, error) {
	query := `
		SELECT id, content, tags, created_at
		FROM fragments
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var fragments []*domain.Fragment
	for rows.Next() {
		fragment, err := scanFragment(rows)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}

	return fragments, rows.Err()
}

// UpdateTags implements store.FragmentStore.UpdateTags
func (s *PostgresFragmentStore) UpdateTags(ctx context.Context, id uuid.UUID, tags []string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to marshal fragment tags: %w", err)
	}

	query := `
		UPDATE fragments
		SET tags = $2
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, tagsJSON)
	if err != nil {
		log.Error("failed to update fragment tags",
			slog.String("error", err.Error()),
			slog.String("fragment_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrFragmentNotFound
	}

	return nil
}

// Delete implements store.FragmentStore.Delete
func (s *PostgresFragmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM fragments WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrFragmentNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanFragment scans one fragments row into a domain.Fragment.
func scanFragment(row rowScanner) (*domain.Fragment, error) {
	var fragment domain.Fragment
	var tagsJSON []byte

	if err := row.Scan(&fragment.ID, &fragment.Content, &tagsJSON, &fragment.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &fragment.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fragment tags: %w", err)
	}

	return &fragment, nil
}
