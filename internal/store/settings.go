package store

import (
	"context"

	"github.com/phrazzld/spark-api/internal/domain"
)

// SettingsStore defines the interface for the single process-wide settings
// record. The core only reads settings; writes come from explicit settings
// actions.
type SettingsStore interface {
	// Get retrieves the current settings, or the zero value if none were
	// ever saved.
	Get(ctx context.Context) (domain.Settings, error)

	// Save replaces the settings wholesale.
	Save(ctx context.Context, settings domain.Settings) error
}
