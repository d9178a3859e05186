package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrCopyGeneration is returned when the copy-generation provider call
	// fails. This error is fatal to the whole generation cycle.
	ErrCopyGeneration = errors.New("failed to generate copy")

	// ErrEmptyCompletion is returned when a provider responds successfully
	// but supplies no usable text for the copy itself.
	ErrEmptyCompletion = errors.New("provider returned empty completion")

	// ErrUnknownProvider is returned when a generation config names a
	// provider no adapter is registered for.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNoImageData is returned when an image model response contains no
	// inline binary payload.
	ErrNoImageData = errors.New("no image data found")

	// ErrInvalidConfig is returned when a provider adapter is constructed
	// with invalid configuration.
	ErrInvalidConfig = errors.New("invalid provider configuration")
)
