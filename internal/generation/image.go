package generation

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/phrazzld/spark-api/internal/domain"
)

// ImageSynthesizer produces a cover image for a finished copy: it derives a
// visual prompt from the copy text via one model call, invokes the
// image-capable model with a fixed portrait aspect policy, and wraps the
// returned binary payload into a displayable data URI.
type ImageSynthesizer struct {
	text   TextProvider
	images ImageProvider
	logger *slog.Logger
}

// NewImageSynthesizer creates an ImageSynthesizer. Both the derivation and
// the image call go to the primary backend.
func NewImageSynthesizer(text TextProvider, images ImageProvider, logger *slog.Logger) *ImageSynthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageSynthesizer{
		text:   text,
		images: images,
		logger: logger.With("component", "image_synthesizer"),
	}
}

// Synthesize derives an image prompt from the generated copy and returns the
// cover image as a data:image/png;base64 URI. May fail; the orchestrator
// treats image failure as non-fatal.
func (s *ImageSynthesizer) Synthesize(
	ctx context.Context,
	copyText string,
	niche domain.Niche,
	apiKey string,
) (string, error) {
	systemPrompt, userPrompt := BuildImageDerivationPrompt(copyText, niche)
	prompt, err := s.text.GenerateText(ctx, TextRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		APIKey:       apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to derive image prompt: %w", err)
	}

	if prompt == "" {
		prompt = FallbackImagePrompt(niche)
		s.logger.DebugContext(ctx, "image prompt derivation returned no text, using fallback prompt")
	}

	data, err := s.images.GenerateImage(ctx, prompt, apiKey)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
