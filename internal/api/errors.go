package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/spark-api/internal/api/shared"
	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/service"
	"github.com/phrazzld/spark-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrFragmentNotFound),
		errors.Is(err, service.ErrCopyNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrEmptyInput),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Upstream provider failure
	case errors.Is(err, generation.ErrCopyGeneration):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrFragmentNotFound):
		return "Fragment not found"

	case errors.Is(err, service.ErrCopyNotFound):
		return "Generated copy not found"

	case errors.Is(err, service.ErrEmptyInput),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"

	case errors.Is(err, generation.ErrCopyGeneration):
		return "Copy generation failed, please try again"

	default:
		return "An unexpected error occurred"
	}
}

// RespondServiceError is the common handler tail: map the error, log it,
// and send the sanitized response.
func RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
