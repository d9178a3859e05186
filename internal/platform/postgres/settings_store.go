package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/spark-api/internal/domain"
	"github.com/phrazzld/spark-api/internal/platform/logger"
	"github.com/phrazzld/spark-api/internal/store"
)

// PostgresSettingsStore implements the store.SettingsStore interface. The
// settings table holds at most one row, keyed at id=1.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the
// SettingsStore interface. If logger is nil, a default logger will be used.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get. When no settings row exists yet
// the zero value is returned without error.
func (s *PostgresSettingsStore) Get(ctx context.Context) (domain.Settings, error) {
	query := `
		SELECT niche, style_description, custom_api_key, ai_provider
		FROM settings
		WHERE id = 1
	`
	var settings domain.Settings
	err := s.db.QueryRowContext(ctx, query).Scan(
		&settings.Niche,
		&settings.StyleDescription,
		&settings.CustomAPIKey,
		&settings.AIProvider,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Settings{}, nil
		}
		return domain.Settings{}, err
	}

	return settings, nil
}

// Save implements store.SettingsStore.Save
func (s *PostgresSettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO settings (id, niche, style_description, custom_api_key, ai_provider)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET niche = EXCLUDED.niche,
		    style_description = EXCLUDED.style_description,
		    custom_api_key = EXCLUDED.custom_api_key,
		    ai_provider = EXCLUDED.ai_provider
	`
	_, err := s.db.ExecContext(ctx, query,
		settings.Niche, settings.StyleDescription, settings.CustomAPIKey, settings.AIProvider)
	if err != nil {
		log.Error("failed to save settings",
			slog.String("error", err.Error()))
		return err
	}

	log.Debug("settings saved",
		slog.String("provider", string(settings.ProviderOrDefault())))
	return nil
}
