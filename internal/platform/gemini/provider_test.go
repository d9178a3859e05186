package gemini

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/phrazzld/spark-api/internal/config"
	"github.com/phrazzld/spark-api/internal/generation"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:        "test-api-key",
		GeminiTextModel:     "gemini-2.5-flash",
		GeminiImageModel:    "gemini-2.5-flash-image-preview",
		DeepSeekModel:       "deepseek-chat",
		KimiModel:           "moonshot-v1-8k",
		ThinkingBudget:      2048,
		TextTimeoutSeconds:  60,
		ImageTimeoutSeconds: 120,
	}
}

func TestNewProviderValidation(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	_, err := NewProvider(ctx, nil, testLLMConfig())
	require.Error(t, err, "nil logger must be rejected")

	cfg := testLLMConfig()
	cfg.GeminiAPIKey = ""
	_, err = NewProvider(ctx, logger, cfg)
	require.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg = testLLMConfig()
	cfg.GeminiTextModel = ""
	_, err = NewProvider(ctx, logger, cfg)
	require.ErrorIs(t, err, generation.ErrInvalidConfig)

	provider, err := NewProvider(ctx, logger, testLLMConfig())
	require.NoError(t, err)
	require.NotNil(t, provider)
}

func TestAuditResponseSchema(t *testing.T) {
	schema := auditResponseSchema()

	require.Equal(t, genai.TypeObject, schema.Type)
	assert.ElementsMatch(t, auditSchemaFields, schema.Required,
		"all nine audit fields must be required")

	for _, field := range []string{"headline", "quality", "emotion", "trending", "viralPotential", "overall"} {
		prop, ok := schema.Properties[field]
		require.True(t, ok, "missing score field %s", field)
		assert.Equal(t, genai.TypeInteger, prop.Type)
	}

	for _, field := range []string{"suggestions", "pros", "sensitiveWords"} {
		prop, ok := schema.Properties[field]
		require.True(t, ok, "missing list field %s", field)
		assert.Equal(t, genai.TypeArray, prop.Type)
		require.NotNil(t, prop.Items)
		assert.Equal(t, genai.TypeString, prop.Items.Type)
	}
}
