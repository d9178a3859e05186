package api

import (
	"time"

	"github.com/phrazzld/spark-api/internal/domain"
)

// FragmentResponse represents the response data for a fragment
type FragmentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// CopyResponse represents the response data for a generated copy
type CopyResponse struct {
	ID           string             `json:"id"`
	Platform     string             `json:"platform"`
	Content      string             `json:"content"`
	Audit        domain.AuditScore  `json:"audit"`
	ImageDataURI string             `json:"image_data_uri,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// SettingsResponse represents the response data for the settings. The
// custom API key is never echoed back; only its presence is reported.
type SettingsResponse struct {
	Niche            string `json:"niche"`
	StyleDescription string `json:"style_description"`
	HasCustomAPIKey  bool   `json:"has_custom_api_key"`
	AIProvider       string `json:"ai_provider,omitempty"`
}

// fragmentToResponse converts a domain.Fragment to a FragmentResponse
func fragmentToResponse(fragment *domain.Fragment) FragmentResponse {
	return FragmentResponse{
		ID:        fragment.ID.String(),
		Content:   fragment.Content,
		Tags:      fragment.Tags,
		CreatedAt: fragment.CreatedAt,
	}
}

// fragmentsToResponse converts a fragment list, never returning nil so the
// JSON encodes as an empty array.
func fragmentsToResponse(fragments []*domain.Fragment) []FragmentResponse {
	responses := make([]FragmentResponse, 0, len(fragments))
	for _, fragment := range fragments {
		responses = append(responses, fragmentToResponse(fragment))
	}
	return responses
}

// copyToResponse converts a domain.GeneratedCopy to a CopyResponse
func copyToResponse(copy *domain.GeneratedCopy) CopyResponse {
	return CopyResponse{
		ID:           copy.ID.String(),
		Platform:     string(copy.Config.Platform),
		Content:      copy.Content,
		Audit:        copy.Audit,
		ImageDataURI: copy.ImageDataURI,
		CreatedAt:    copy.CreatedAt,
	}
}

// copiesToResponse converts a copy list, never returning nil.
func copiesToResponse(copies []*domain.GeneratedCopy) []CopyResponse {
	responses := make([]CopyResponse, 0, len(copies))
	for _, copy := range copies {
		responses = append(responses, copyToResponse(copy))
	}
	return responses
}

// settingsToResponse converts domain.Settings to a SettingsResponse
func settingsToResponse(settings domain.Settings) SettingsResponse {
	return SettingsResponse{
		Niche:            string(settings.Niche),
		StyleDescription: settings.StyleDescription,
		HasCustomAPIKey:  settings.CustomAPIKey != "",
		AIProvider:       string(settings.AIProvider),
	}
}
