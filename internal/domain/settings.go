package domain

import "errors"

// ErrInvalidProvider indicates an unrecognized AI provider selection.
var ErrInvalidProvider = errors.New("invalid AI provider")

// Settings is the single process-wide creator profile: topical niche,
// analyzed writing style, and provider credentials. The core only ever reads
// settings; mutation happens through the settings store, and each generation
// request works from an immutable GenerationConfig snapshot instead.
type Settings struct {
	Niche            Niche    `json:"niche"`
	StyleDescription string   `json:"style_description"`
	CustomAPIKey     string   `json:"custom_api_key,omitempty"`
	AIProvider       Provider `json:"ai_provider,omitempty"`
}

// Validate checks if the Settings hold a recognized provider selection.
func (s *Settings) Validate() error {
	if !s.AIProvider.IsValid() {
		return ErrInvalidProvider
	}
	return nil
}

// ProviderOrDefault resolves the effective provider, treating an absent
// selection as the primary (Gemini) backend.
func (s *Settings) ProviderOrDefault() Provider {
	return s.AIProvider.OrDefault()
}
