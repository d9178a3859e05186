package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN", "bogus", ""} {
		logger, err := Setup(LoggerConfig{Level: level})
		require.NoError(t, err, "Setup should not fail for level %q", level)
		require.NotNil(t, logger)
	}
}

func TestContextHelpers(t *testing.T) {
	base := slog.Default()
	scoped := base.With("trace_id", "abc123")

	ctx := WithLogger(context.Background(), scoped)

	assert.Equal(t, scoped, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
	assert.Equal(t, scoped, FromContextOrDefault(ctx, base))
	assert.Equal(t, base, FromContextOrDefault(context.Background(), base))
	assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
}
