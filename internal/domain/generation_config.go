package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Common validation errors for GenerationConfig
var (
	ErrEmptyPlatform    = errors.New("generation platform cannot be empty")
	ErrInvalidStyleMode = errors.New("invalid style mode")
)

// GenerationConfig is the immutable per-request snapshot of everything a
// generation cycle needs: the creator settings at the time of the request
// plus the request-specific choices. It is constructed once per request and
// never mutated afterwards; the resulting GeneratedCopy owns its own deep
// copy so later settings changes cannot alias back into finished records.
type GenerationConfig struct {
	Platform            Platform    `json:"platform"`
	Niche               Niche       `json:"niche"`
	StyleDescription    string      `json:"style_description"`
	CustomAPIKey        string      `json:"custom_api_key,omitempty"`
	Provider            Provider    `json:"provider,omitempty"`
	RefURL              string      `json:"ref_url,omitempty"`
	SelectedFragmentIDs []uuid.UUID `json:"selected_fragment_ids,omitempty"`
	StyleMode           StyleMode   `json:"style_mode"`
	WithImage           bool        `json:"with_image"`
}

// NewGenerationConfig snapshots the given settings and request choices into
// an immutable config. Returns an error if validation fails.
func NewGenerationConfig(
	settings Settings,
	platform Platform,
	refURL string,
	selectedFragmentIDs []uuid.UUID,
	styleMode StyleMode,
	withImage bool,
) (GenerationConfig, error) {
	cfg := GenerationConfig{
		Platform:            platform,
		Niche:               settings.Niche,
		StyleDescription:    settings.StyleDescription,
		CustomAPIKey:        settings.CustomAPIKey,
		Provider:            settings.ProviderOrDefault(),
		RefURL:              refURL,
		SelectedFragmentIDs: append([]uuid.UUID(nil), selectedFragmentIDs...),
		StyleMode:           styleMode,
		WithImage:           withImage,
	}

	if err := cfg.Validate(); err != nil {
		return GenerationConfig{}, err
	}

	return cfg, nil
}

// Validate checks if the GenerationConfig has valid data.
func (c *GenerationConfig) Validate() error {
	if c.Platform == "" {
		return ErrEmptyPlatform
	}

	if !c.Provider.IsValid() {
		return ErrInvalidProvider
	}

	switch c.StyleMode {
	case StyleModePreset, StyleModeImitate:
	default:
		return ErrInvalidStyleMode
	}

	return nil
}

// Clone returns a deep copy of the config. Slices are copied so the clone
// shares no mutable state with the original.
func (c GenerationConfig) Clone() GenerationConfig {
	clone := c
	clone.SelectedFragmentIDs = append([]uuid.UUID(nil), c.SelectedFragmentIDs...)
	return clone
}
