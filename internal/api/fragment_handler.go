package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/spark-api/internal/api/shared"
	"github.com/phrazzld/spark-api/internal/service"
)

// CreateFragmentRequest represents the request body for capturing a fragment
type CreateFragmentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// FragmentHandler handles fragment-related HTTP requests
type FragmentHandler struct {
	contentService service.ContentService
	validator      *validator.Validate
}

// NewFragmentHandler creates a new FragmentHandler
func NewFragmentHandler(contentService service.ContentService) *FragmentHandler {
	return &FragmentHandler{
		contentService: contentService,
		validator:      validator.New(),
	}
}

// CreateFragment handles POST /api/fragments requests. Tagging runs
// asynchronously, so the response is 202 Accepted with the pending tag.
func (h *FragmentHandler) CreateFragment(w http.ResponseWriter, r *http.Request) {
	var req CreateFragmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: content is required")
		return
	}

	fragment, err := h.contentService.CreateFragmentAndEnqueueTagging(r.Context(), req.Content)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, fragmentToResponse(fragment))
}

// ListFragments handles GET /api/fragments requests
func (h *FragmentHandler) ListFragments(w http.ResponseWriter, r *http.Request) {
	fragments, err := h.contentService.ListFragments(r.Context())
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, fragmentsToResponse(fragments))
}

// DeleteFragment handles DELETE /api/fragments/{id} requests
func (h *FragmentHandler) DeleteFragment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid fragment ID")
		return
	}

	if err := h.contentService.DeleteFragment(r.Context(), id); err != nil {
		RespondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
