package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/spark-api/internal/domain"
)

// CopyStore defines the interface for generated-copy persistence.
type CopyStore interface {
	// Create saves a new generated copy record.
	Create(ctx context.Context, copy *domain.GeneratedCopy) error

	// GetByID retrieves a generated copy by its unique ID.
	// Returns ErrCopyNotFound if the copy does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedCopy, error)

	// List retrieves all generated copies, newest first.
	List(ctx context.Context) ([]*domain.GeneratedCopy, error)

	// ReplaceContentAndAudit atomically replaces the content and audit of
	// an existing record, leaving id, config, image, and createdAt intact.
	// Returns ErrCopyNotFound if the copy does not exist.
	ReplaceContentAndAudit(ctx context.Context, id uuid.UUID, content string, audit domain.AuditScore) error

	// Delete removes a generated copy.
	// Returns ErrCopyNotFound if the copy does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
