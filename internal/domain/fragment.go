package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tag sentinels used across the tagging lifecycle.
const (
	// PendingTag is assigned synchronously when a fragment is inserted,
	// before the asynchronous tagging task has resolved.
	PendingTag = "待打标"

	// FallbackTag replaces the pending tag when tagging fails. A fragment's
	// tag list is never left empty once tagging settles.
	FallbackTag = "通用"
)

// MaxFragmentTags caps how many labels the tagging task may attach.
const MaxFragmentTags = 3

// Common validation errors for Fragment
var (
	ErrEmptyFragmentID      = errors.New("fragment ID cannot be empty")
	ErrEmptyFragmentContent = errors.New("fragment content cannot be empty")
	ErrEmptyFragmentTags    = errors.New("fragment tags cannot be empty")
)

// Fragment is a short unstructured idea snippet captured by the user, the raw
// material for copy generation. Tags are populated asynchronously after
// insert; until then the fragment carries the pending sentinel tag.
type Fragment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFragment creates a new Fragment with the given content.
// It generates a new UUID, assigns the pending sentinel tag, and sets the
// creation timestamp. Returns an error if validation fails.
func NewFragment(content string) (*Fragment, error) {
	fragment := &Fragment{
		ID:        uuid.New(),
		Content:   content,
		Tags:      []string{PendingTag},
		CreatedAt: time.Now().UTC(),
	}

	if err := fragment.Validate(); err != nil {
		return nil, err
	}

	return fragment, nil
}

// Validate checks if the Fragment has valid data.
func (f *Fragment) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFragmentID
	}

	if f.Content == "" {
		return ErrEmptyFragmentContent
	}

	if len(f.Tags) == 0 {
		return ErrEmptyFragmentTags
	}

	return nil
}

// SetTags replaces the fragment's tags with the given labels, capped at
// MaxFragmentTags. An empty label list falls back to the sentinel tag so the
// non-empty invariant holds.
func (f *Fragment) SetTags(tags []string) {
	if len(tags) == 0 {
		f.Tags = []string{FallbackTag}
		return
	}

	if len(tags) > MaxFragmentTags {
		tags = tags[:MaxFragmentTags]
	}

	f.Tags = tags
}
