package generation

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/phrazzld/spark-api/internal/domain"
)

// AuditEngine scores finished copies via a provider round trip. Audit never
// raises to the caller: any provider error, parse failure, or missing field
// yields the defined zeroed fallback score, shaped exactly like a success so
// downstream rendering needs no special case.
type AuditEngine struct {
	structured StructuredAuditProvider
	registry   *Registry
	logger     *slog.Logger
}

// NewAuditEngine creates an AuditEngine. The structured provider carries the
// primary backend's schema-constrained JSON call; alternates go through the
// registry with a prompt-enforced JSON contract.
func NewAuditEngine(structured StructuredAuditProvider, registry *Registry, logger *slog.Logger) *AuditEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditEngine{
		structured: structured,
		registry:   registry,
		logger:     logger.With("component", "audit_engine"),
	}
}

// auditResponse mirrors the required audit JSON schema. Pointer fields let
// the parser distinguish a missing field from a legitimate zero.
type auditResponse struct {
	Headline       *int      `json:"headline"`
	Quality        *int      `json:"quality"`
	Emotion        *int      `json:"emotion"`
	Trending       *int      `json:"trending"`
	ViralPotential *int      `json:"viralPotential"`
	Overall        *int      `json:"overall"`
	Suggestions    *[]string `json:"suggestions"`
	Pros           *[]string `json:"pros"`
	SensitiveWords *[]string `json:"sensitiveWords"`
}

// Audit scores the given copy for the given platform. Exactly one provider
// round trip is made; there is no retry. The returned score is either fully
// parsed from the model output or the fallback, never partial.
func (e *AuditEngine) Audit(
	ctx context.Context,
	content string,
	platform domain.Platform,
	apiKey string,
	provider domain.Provider,
) domain.AuditScore {
	systemPrompt, userPrompt := BuildAuditPrompt(content, platform)
	req := TextRequest{SystemPrompt: systemPrompt, UserPrompt: userPrompt, APIKey: apiKey}

	raw, err := e.generate(ctx, req, provider)
	if err != nil {
		e.logger.WarnContext(ctx, "audit provider call failed, using fallback score",
			"provider", provider.OrDefault(),
			"error", err)
		return domain.FallbackAuditScore()
	}

	score, ok := parseAuditJSON(raw)
	if !ok {
		e.logger.WarnContext(ctx, "audit response unparseable, using fallback score",
			"provider", provider.OrDefault(),
			"response_length", len(raw))
		return domain.FallbackAuditScore()
	}

	return score
}

// generate performs the single provider round trip for an audit request.
func (e *AuditEngine) generate(ctx context.Context, req TextRequest, provider domain.Provider) (string, error) {
	if provider.OrDefault() == domain.ProviderGemini {
		return e.structured.GenerateAuditJSON(ctx, req)
	}

	p, err := e.registry.Get(provider)
	if err != nil {
		return "", err
	}
	return p.GenerateText(ctx, req)
}

// parseAuditJSON parses the raw model output into an AuditScore. All nine
// fields are mandatory; any missing field or malformed JSON reports false.
func parseAuditJSON(raw string) (domain.AuditScore, bool) {
	var resp auditResponse
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &resp); err != nil {
		return domain.AuditScore{}, false
	}

	if resp.Headline == nil || resp.Quality == nil || resp.Emotion == nil ||
		resp.Trending == nil || resp.ViralPotential == nil || resp.Overall == nil ||
		resp.Suggestions == nil || resp.Pros == nil || resp.SensitiveWords == nil {
		return domain.AuditScore{}, false
	}

	return domain.AuditScore{
		Headline:       *resp.Headline,
		Quality:        *resp.Quality,
		Emotion:        *resp.Emotion,
		Trending:       *resp.Trending,
		ViralPotential: *resp.ViralPotential,
		Overall:        *resp.Overall,
		Suggestions:    *resp.Suggestions,
		Pros:           *resp.Pros,
		SensitiveWords: *resp.SensitiveWords,
	}, true
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON despite instructions.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
