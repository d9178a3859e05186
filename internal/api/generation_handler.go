package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/phrazzld/spark-api/internal/api/shared"
	"github.com/phrazzld/spark-api/internal/domain"
	"github.com/phrazzld/spark-api/internal/service"
)

// GenerateCopyRequest represents the request body for one generation cycle
type GenerateCopyRequest struct {
	Platform            string   `json:"platform"              validate:"required"`
	RefURL              string   `json:"ref_url"               validate:"omitempty,url"`
	SelectedFragmentIDs []string `json:"selected_fragment_ids" validate:"omitempty,dive,uuid"`
	StyleMode           string   `json:"style_mode"            validate:"required,oneof=preset imitate"`
	WithImage           bool     `json:"with_image"`
}

// ReAuditRequest represents the request body for re-scoring edited content
type ReAuditRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// GenerationHandler handles generation-related HTTP requests
type GenerationHandler struct {
	contentService service.ContentService
	validator      *validator.Validate
	markdown       goldmark.Markdown
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(contentService service.ContentService) *GenerationHandler {
	return &GenerationHandler{
		contentService: contentService,
		validator:      validator.New(),
		markdown:       goldmark.New(),
	}
}

// GenerateCopy handles POST /api/generations requests
func (h *GenerationHandler) GenerateCopy(w http.ResponseWriter, r *http.Request) {
	var req GenerateCopyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	fragmentIDs := make([]uuid.UUID, 0, len(req.SelectedFragmentIDs))
	for _, raw := range req.SelectedFragmentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid fragment ID: "+raw)
			return
		}
		fragmentIDs = append(fragmentIDs, id)
	}

	copy, err := h.contentService.Generate(r.Context(), service.GenerateRequest{
		Platform:            domain.Platform(req.Platform),
		RefURL:              req.RefURL,
		SelectedFragmentIDs: fragmentIDs,
		StyleMode:           domain.StyleMode(req.StyleMode),
		WithImage:           req.WithImage,
	})
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, copyToResponse(copy))
}

// ListCopies handles GET /api/generations requests
func (h *GenerationHandler) ListCopies(w http.ResponseWriter, r *http.Request) {
	copies, err := h.contentService.ListCopies(r.Context())
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, copiesToResponse(copies))
}

// GetCopy handles GET /api/generations/{id} requests. With ?format=html the
// copy content is rendered from markdown to HTML for preview.
func (h *GenerationHandler) GetCopy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid copy ID")
		return
	}

	copy, err := h.contentService.GetCopy(r.Context(), id)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(copy.Content), &buf); err != nil {
			RespondServiceError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, copyToResponse(copy))
}

// ReAuditCopy handles POST /api/generations/{id}/reaudit requests
func (h *GenerationHandler) ReAuditCopy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid copy ID")
		return
	}

	var req ReAuditRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: content is required")
		return
	}

	copy, err := h.contentService.ReAudit(r.Context(), id, req.Content)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, copyToResponse(copy))
}
