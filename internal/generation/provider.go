package generation

import (
	"context"
	"fmt"

	"github.com/phrazzld/spark-api/internal/domain"
)

// TextRequest carries one provider invocation: a system prompt, a user
// prompt, and per-call options. Exactly one network round trip is made per
// request; retrying is the caller's decision.
type TextRequest struct {
	SystemPrompt string
	UserPrompt   string

	// APIKey overrides the process-wide default credential when non-empty.
	APIKey string

	// ThinkingBudget tunes the primary provider's internal deliberation.
	// Zero disables thinking. Ignored by the OpenAI-compatible backends.
	ThinkingBudget int32
}

// TextProvider is the uniform contract over interchangeable text-generation
// backends. Implementations return empty text rather than an error when the
// provider responds successfully but supplies no text payload.
type TextProvider interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// StructuredAuditProvider is implemented by backends that support
// schema-constrained JSON output, used by the audit engine. The returned
// string is the raw JSON text.
type StructuredAuditProvider interface {
	GenerateAuditJSON(ctx context.Context, req TextRequest) (string, error)
}

// ImageProvider is implemented by image-capable backends. It returns the raw
// binary payload of the first inline image in the response, or ErrNoImageData
// when the response carries none.
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt string, apiKey string) ([]byte, error)
}

// Registry selects the TextProvider implementation for a provider enum
// value. Adding a backend means registering one implementation, not editing
// a branch chain.
type Registry struct {
	providers map[domain.Provider]TextProvider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[domain.Provider]TextProvider)}
}

// Register binds a provider enum value to its adapter implementation.
func (r *Registry) Register(p domain.Provider, provider TextProvider) {
	r.providers[p] = provider
}

// Get resolves the adapter for the given provider, treating an absent
// selection as the primary backend. Returns ErrUnknownProvider when no
// adapter is registered.
func (r *Registry) Get(p domain.Provider) (TextProvider, error) {
	provider, ok := r.providers[p.OrDefault()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p.OrDefault())
	}
	return provider, nil
}
