package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/spark-api/internal/domain"
)

// FragmentStore defines the interface for fragment persistence.
type FragmentStore interface {
	// Create saves a new fragment. It handles domain validation internally.
	Create(ctx context.Context, fragment *domain.Fragment) error

	// GetByID retrieves a fragment by its unique ID.
	// Returns ErrFragmentNotFound if the fragment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Fragment, error)

	// GetByIDs retrieves the fragments matching the given IDs, preserving
	// the input order. Missing IDs are silently skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Fragment, error)

	// List retrieves all fragments, newest first.
	List(ctx context.Context) ([]*domain.Fragment, error)

	// UpdateTags replaces a fragment's tags. A fragment deleted since the
	// update was requested makes this a no-op: ErrFragmentNotFound is
	// returned and the caller may ignore it.
	UpdateTags(ctx context.Context, id uuid.UUID, tags []string) error

	// Delete removes a fragment.
	// Returns ErrFragmentNotFound if the fragment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
