package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for GeneratedCopy
var (
	ErrEmptyCopyID      = errors.New("copy ID cannot be empty")
	ErrEmptyCopyContent = errors.New("copy content cannot be empty")
)

// GeneratedCopy is the immutable result record of one generation cycle: the
// config snapshot it was produced from, the copy text, its audit score, and
// an optional cover image as a data URI. Content and audit are only ever
// replaced together (re-audit); id, config, and createdAt never change.
type GeneratedCopy struct {
	ID           uuid.UUID        `json:"id"`
	Config       GenerationConfig `json:"config"`
	Content      string           `json:"content"`
	Audit        AuditScore       `json:"audit"`
	ImageDataURI string           `json:"image_data_uri,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// NewGeneratedCopy assembles a result record with a fresh identifier and the
// current timestamp. The config is deep-copied so the record aliases nothing
// mutable. Returns an error if validation fails.
func NewGeneratedCopy(
	config GenerationConfig,
	content string,
	audit AuditScore,
	imageDataURI string,
) (*GeneratedCopy, error) {
	c := &GeneratedCopy{
		ID:           uuid.New(),
		Config:       config.Clone(),
		Content:      content,
		Audit:        audit,
		ImageDataURI: imageDataURI,
		CreatedAt:    time.Now().UTC(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the GeneratedCopy has valid data.
func (c *GeneratedCopy) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCopyID
	}

	if c.Content == "" {
		return ErrEmptyCopyContent
	}

	return c.Config.Validate()
}

// ReplaceAudit atomically swaps in edited content and its fresh audit score,
// leaving id, config, image, and createdAt untouched.
func (c *GeneratedCopy) ReplaceAudit(content string, audit AuditScore) error {
	if content == "" {
		return ErrEmptyCopyContent
	}

	c.Content = content
	c.Audit = audit
	return nil
}
