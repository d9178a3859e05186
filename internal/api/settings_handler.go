package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/spark-api/internal/api/shared"
	"github.com/phrazzld/spark-api/internal/domain"
	"github.com/phrazzld/spark-api/internal/service"
)

// UpdateSettingsRequest represents the request body for replacing the
// settings. An empty CustomAPIKey clears the stored key.
type UpdateSettingsRequest struct {
	Niche            string `json:"niche"             validate:"required,min=1"`
	StyleDescription string `json:"style_description"`
	CustomAPIKey     string `json:"custom_api_key"`
	AIProvider       string `json:"ai_provider"       validate:"omitempty,oneof=gemini deepseek kimi"`
}

// AnalyzeStyleRequest represents the request body for style analysis
type AnalyzeStyleRequest struct {
	Example string `json:"example" validate:"required,min=1"`
}

// AnalyzeStyleResponse carries the analyzed style description
type AnalyzeStyleResponse struct {
	StyleDescription string `json:"style_description"`
}

// SettingsHandler handles settings and style-analysis HTTP requests
type SettingsHandler struct {
	contentService service.ContentService
	validator      *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(contentService service.ContentService) *SettingsHandler {
	return &SettingsHandler{
		contentService: contentService,
		validator:      validator.New(),
	}
}

// GetSettings handles GET /api/settings requests
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.contentService.GetSettings(r.Context())
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// UpdateSettings handles PUT /api/settings requests
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	settings := domain.Settings{
		Niche:            domain.Niche(req.Niche),
		StyleDescription: req.StyleDescription,
		CustomAPIKey:     req.CustomAPIKey,
		AIProvider:       domain.Provider(req.AIProvider),
	}

	if err := h.contentService.UpdateSettings(r.Context(), settings); err != nil {
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// AnalyzeStyle handles POST /api/style/analyze requests
func (h *SettingsHandler) AnalyzeStyle(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeStyleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: example is required")
		return
	}

	description, err := h.contentService.AnalyzeStyle(r.Context(), req.Example)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnalyzeStyleResponse{StyleDescription: description})
}
