package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/spark-api/internal/store"
)

// Common sentinel errors for the content service
var (
	// ErrFragmentNotFound indicates that the fragment does not exist
	ErrFragmentNotFound = errors.New("fragment not found")

	// ErrCopyNotFound indicates that the generated copy does not exist
	ErrCopyNotFound = errors.New("generated copy not found")

	// ErrEmptyInput indicates that required text input was empty
	ErrEmptyInput = errors.New("input text cannot be empty")
)

// ContentServiceError wraps errors from the content service with context.
type ContentServiceError struct {
	// Operation is the operation that failed (e.g. "create_fragment")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ContentServiceError.
func (e *ContentServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("content service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("content service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ContentServiceError) Unwrap() error {
	return e.Err
}

// NewContentServiceError creates a new ContentServiceError.
// Known sentinel errors are returned directly without wrapping.
func NewContentServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrFragmentNotFound) || errors.Is(err, ErrCopyNotFound) {
		return err
	}

	// Map store-level sentinels to service-level ones
	if errors.Is(err, store.ErrFragmentNotFound) {
		return ErrFragmentNotFound
	}
	if errors.Is(err, store.ErrCopyNotFound) {
		return ErrCopyNotFound
	}

	return &ContentServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
