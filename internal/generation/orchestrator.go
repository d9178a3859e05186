package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/spark-api/internal/domain"
)

// Orchestrator sequences one generation cycle: build the content source,
// generate the copy, optionally synthesize a cover image, audit the copy,
// and assemble the immutable result record. The steps run strictly in that
// order; image synthesis depends on the generated copy text and the audit
// runs last so it reflects the final content.
type Orchestrator struct {
	registry       *Registry
	auditor        *AuditEngine
	images         *ImageSynthesizer
	thinkingBudget int32
	logger         *slog.Logger
}

// NewOrchestrator creates an Orchestrator. thinkingBudget is the fixed
// deliberation budget applied when copy generation runs on the primary
// backend; it must be non-zero there.
func NewOrchestrator(
	registry *Registry,
	auditor *AuditEngine,
	images *ImageSynthesizer,
	thinkingBudget int32,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		registry:       registry,
		auditor:        auditor,
		images:         images,
		thinkingBudget: thinkingBudget,
		logger:         logger.With("component", "orchestrator"),
	}
}

// Generate runs one full generation cycle. Copy generation failure is fatal
// and propagates; image synthesis failure is swallowed after logging; audit
// failure is absorbed inside the audit engine. A non-empty baseDraft takes
// precedence over the selected fragments as the content source.
func (o *Orchestrator) Generate(
	ctx context.Context,
	cfg domain.GenerationConfig,
	baseDraft string,
	fragments []*domain.Fragment,
) (*domain.GeneratedCopy, error) {
	provider, err := o.registry.Get(cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCopyGeneration, err)
	}

	systemPrompt, userPrompt := BuildCopyPrompt(cfg, baseDraft, fragments)
	req := TextRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		APIKey:       cfg.CustomAPIKey,
	}
	if cfg.Provider.OrDefault() == domain.ProviderGemini {
		req.ThinkingBudget = o.thinkingBudget
	}

	o.logger.InfoContext(ctx, "generating copy",
		"provider", cfg.Provider.OrDefault(),
		"platform", cfg.Platform,
		"with_image", cfg.WithImage)

	content, err := provider.GenerateText(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCopyGeneration, err)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: %v", ErrCopyGeneration, ErrEmptyCompletion)
	}

	imageDataURI := ""
	if cfg.WithImage {
		imageDataURI, err = o.images.Synthesize(ctx, content, cfg.Niche, cfg.CustomAPIKey)
		if err != nil {
			// Non-fatal: the cycle completes without a cover image.
			o.logger.WarnContext(ctx, "image synthesis failed, continuing without image",
				"error", err)
			imageDataURI = ""
		}
	}

	audit := o.auditor.Audit(ctx, content, cfg.Platform, cfg.CustomAPIKey, cfg.Provider)

	record, err := domain.NewGeneratedCopy(cfg, content, audit, imageDataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCopyGeneration, err)
	}

	o.logger.InfoContext(ctx, "generation cycle complete",
		"copy_id", record.ID,
		"overall_score", audit.Overall,
		"has_image", imageDataURI != "")

	return record, nil
}

// ReAudit re-scores user-edited content against the record's original
// platform and provider selection. It never regenerates copy or image and
// never fails: audit degradation produces the fallback score.
func (o *Orchestrator) ReAudit(
	ctx context.Context,
	content string,
	cfg domain.GenerationConfig,
) domain.AuditScore {
	return o.auditor.Audit(ctx, content, cfg.Platform, cfg.CustomAPIKey, cfg.Provider)
}
