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

// PostgresCopyStore implements the store.CopyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCopyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCopyStore creates a new PostgreSQL implementation of the
// CopyStore interface. If logger is nil, a default logger will be used.
func NewPostgresCopyStore(db store.DBTX, logger *slog.Logger) *PostgresCopyStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCopyStore{
		db:     db,
		logger: logger.With(slog.String("component", "copy_store")),
	}
}

// Ensure PostgresCopyStore implements store.CopyStore
var _ store.CopyStore = (*PostgresCopyStore)(nil)

// Create implements store.CopyStore.Create
func (s *PostgresCopyStore) Create(ctx context.Context, copy *domain.GeneratedCopy) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := copy.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	configJSON, err := json.Marshal(copy.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal copy config: %w", err)
	}

	auditJSON, err := json.Marshal(copy.Audit)
	if err != nil {
		return fmt.Errorf("failed to marshal audit score: %w", err)
	}

	query := `
		INSERT INTO generated_copies (id, config, content, audit, image_data_uri, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		copy.ID, configJSON, copy.Content, auditJSON, copy.ImageDataURI, copy.CreatedAt)
	if err != nil {
		log.Error("failed to create generated copy",
			slog.String("error", err.Error()),
			slog.String("copy_id", copy.ID.String()))
		return err
	}

	log.Debug("generated copy created",
		slog.String("copy_id", copy.ID.String()))
	return nil
}

// GetByID implements store.CopyStore.GetByID
func (s *PostgresCopyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedCopy, error) {
	query := `
		SELECT id, config, content, audit, image_data_uri, created_at
		FROM generated_copies
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, id)

	copy, err := scanCopy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCopyNotFound
		}
		return nil, err
	}

	return copy, nil
}

// List implements store.CopyStore.List
func (s *PostgresCopyStore) List(ctx context.Context) ([]*domain.GeneratedCopy, error) {
	query := `
		SELECT id, config, content, audit, image_data_uri, created_at
		FROM generated_copies
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var copies []*domain.GeneratedCopy
	for rows.Next() {
		copy, err := scanCopy(rows)
		if err != nil {
			return nil, err
		}
		copies = append(copies, copy)
	}

	return copies, rows.Err()
}

// ReplaceContentAndAudit implements store.CopyStore.ReplaceContentAndAudit
func (s *PostgresCopyStore) ReplaceContentAndAudit(
	ctx context.Context,
	id uuid.UUID,
	content string,
	audit domain.AuditScore,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	auditJSON, err := json.Marshal(audit)
	if err != nil {
		return fmt.Errorf("failed to marshal audit score: %w", err)
	}

	// Single UPDATE keeps the content+audit replacement atomic.
	query := `
		UPDATE generated_copies
		SET content = $2, audit = $3
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, content, auditJSON)
	if err != nil {
		log.Error("failed to replace copy content and audit",
			slog.String("error", err.Error()),
			slog.String("copy_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrCopyNotFound
	}

	return nil
}

// Delete implements store.CopyStore.Delete
func (s *PostgresCopyStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM generated_copies WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrCopyNotFound
	}

	return nil
}

// scanCopy scans one generated_copies row into a domain.GeneratedCopy.
func scanCopy(row rowScanner) (*domain.GeneratedCopy, error) {
	var copy domain.GeneratedCopy
	var configJSON, auditJSON []byte

	if err := row.Scan(&copy.ID, &configJSON, &copy.Content, &auditJSON, &copy.ImageDataURI, &copy.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(configJSON, &copy.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal copy config: %w", err)
	}

	if err := json.Unmarshal(auditJSON, &copy.Audit); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit score: %w", err)
	}

	return &copy, nil
}
