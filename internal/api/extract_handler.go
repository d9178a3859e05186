package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/spark-api/internal/api/shared"
	"github.com/phrazzld/spark-api/internal/service"
)

// ExtractRequest represents the request body for URL text extraction
type ExtractRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ExtractResponse carries the extracted text. Text is empty when nothing
// could be extracted; that is not an error.
type ExtractResponse struct {
	Text string `json:"text"`
}

// ExtractHandler handles URL extraction HTTP requests
type ExtractHandler struct {
	extractor service.URLExtractor
	validator *validator.Validate
}

// NewExtractHandler creates a new ExtractHandler
func NewExtractHandler(extractor service.URLExtractor) *ExtractHandler {
	return &ExtractHandler{
		extractor: extractor,
		validator: validator.New(),
	}
}

// Extract handles POST /api/extract requests. Extraction is best-effort:
// failures come back as an empty text, never as an error status.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: a valid url is required")
		return
	}

	result := h.extractor.Extract(r.Context(), req.URL)

	shared.RespondWithJSON(w, r, http.StatusOK, ExtractResponse{Text: result.Text})
}
