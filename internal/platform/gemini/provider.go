package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/spark-api/internal/config"
	"github.com/phrazzld/spark-api/internal/generation"
)

// imageAspectRatio is the fixed portrait aspect policy for cover images.
const imageAspectRatio = "3:4"

// Provider implements the generation provider interfaces using the Gemini
// API. It holds one client bound to the process-wide default key; per-call
// key overrides get a transient client.
type Provider struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
}

// Interface conformance
var (
	_ generation.TextProvider            = (*Provider)(nil)
	_ generation.StructuredAuditProvider = (*Provider)(nil)
	_ generation.ImageProvider           = (*Provider)(nil)
)

// NewProvider creates a new Gemini provider with the given configuration.
func NewProvider(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.GeminiTextModel == "" || cfg.GeminiImageModel == "" {
		return nil, fmt.Errorf("%w: gemini model names cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Provider{
		logger: logger.With("component", "gemini_provider"),
		config: cfg,
		client: client,
	}, nil
}

// clientFor resolves the client for a call, building a transient one when a
// user-supplied key overrides the process-wide default.
func (p *Provider) clientFor(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" || apiKey == p.config.GeminiAPIKey {
		return p.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client for override key: %w", err)
	}
	return client, nil
}

// GenerateText makes a single text-generation call. The system prompt rides
// the dedicated system-instruction channel rather than a message list, and a
// positive thinking budget turns on model deliberation. A successful call
// with no text payload returns "" rather than an error.
func (p *Provider) GenerateText(ctx context.Context, req generation.TextRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.config.TextTimeoutSeconds)*time.Second)
	defer cancel()

	client, err := p.clientFor(ctx, req.APIKey)
	if err != nil {
		return "", err
	}

	genCfg := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.ThinkingBudget > 0 {
		genCfg.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(req.ThinkingBudget),
		}
	}

	resp, err := client.Models.GenerateContent(ctx, p.config.GeminiTextModel, genai.Text(req.UserPrompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini text generation failed: %w", err)
	}

	return resp.Text(), nil
}

// GenerateAuditJSON makes a single schema-constrained call returning the raw
// audit JSON text. The response schema marks all nine audit fields required.
func (p *Provider) GenerateAuditJSON(ctx context.Context, req generation.TextRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.config.TextTimeoutSeconds)*time.Second)
	defer cancel()

	client, err := p.clientFor(ctx, req.APIKey)
	if err != nil {
		return "", err
	}

	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   auditResponseSchema(),
	}
	if req.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, p.config.GeminiTextModel, genai.Text(req.UserPrompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini audit generation failed: %w", err)
	}

	return resp.Text(), nil
}

// GenerateImage makes a single image-generation call with the fixed 3:4
// portrait aspect policy and returns the first inline binary payload found
// in the response parts. No inline payload is a hard failure.
func (p *Provider) GenerateImage(ctx context.Context, prompt string, apiKey string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.config.ImageTimeoutSeconds)*time.Second)
	defer cancel()

	client, err := p.clientFor(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	genCfg := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: imageAspectRatio,
		},
	}

	resp, err := client.Models.GenerateContent(ctx, p.config.GeminiImageModel, genai.Text(prompt), genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini image generation failed: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, generation.ErrNoImageData
}
