package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/spark-api/internal/config"
	"github.com/phrazzld/spark-api/internal/domain"
	"github.com/phrazzld/spark-api/internal/events"
	"github.com/phrazzld/spark-api/internal/extract"
	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/platform/gemini"
	"github.com/phrazzld/spark-api/internal/platform/openaicompat"
	"github.com/phrazzld/spark-api/internal/platform/postgres"
	"github.com/phrazzld/spark-api/internal/service"
	"github.com/phrazzld/spark-api/internal/store"
	"github.com/phrazzld/spark-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	fragmentStore store.FragmentStore
	copyStore     store.CopyStore
	settingsStore store.SettingsStore
	taskStore     task.TaskStore

	// Generation pipeline
	registry     *generation.Registry
	orchestrator *generation.Orchestrator

	// Service interfaces
	contentService service.ContentService
	extractor      service.URLExtractor

	// Event system
	eventEmitter events.EventEmitter

	// Task handling
	taskRunner *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.fragmentStore = postgres.NewPostgresFragmentStore(db, logger)
	app.copyStore = postgres.NewPostgresCopyStore(db, logger)
	app.settingsStore = postgres.NewPostgresSettingsStore(db, logger)

	// Initialize text providers
	geminiProvider, err := gemini.NewProvider(ctx, logger.With("component", "gemini_provider"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini provider: %w", err)
	}

	deepseekBackend, err := openaicompat.NewDeepSeek(logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize DeepSeek backend: %w", err)
	}

	kimiBackend, err := openaicompat.NewKimi(logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kimi backend: %w", err)
	}

	app.registry = generation.NewRegistry()
	app.registry.Register(domain.ProviderGemini, geminiProvider)
	app.registry.Register(domain.ProviderDeepSeek, deepseekBackend)
	app.registry.Register(domain.ProviderKimi, kimiBackend)
	logger.Info("LLM providers initialized",
		"providers", []string{
			string(domain.ProviderGemini),
			string(domain.ProviderDeepSeek),
			string(domain.ProviderKimi),
		})

	// Audits and images always run on Gemini regardless of the copy provider.
	auditor := generation.NewAuditEngine(geminiProvider, app.registry, logger)
	images := generation.NewImageSynthesizer(geminiProvider, geminiProvider, logger)
	app.orchestrator = generation.NewOrchestrator(
		app.registry,
		auditor,
		images,
		cfg.LLM.ThinkingBudget,
		logger,
	)

	// Initialize task runner
	app.taskStore = task.NewInMemoryTaskStore()
	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	// Initialize event emitter and wire tagging events into the task runner
	emitter := events.NewInMemoryEventEmitter(logger)
	taggingFactory := task.NewFragmentTaggingTaskFactory(
		app.fragmentStore,
		geminiProvider,
		logger,
	)
	emitter.RegisterHandler(task.NewTaskFactoryEventHandler(
		taggingFactory,
		app.taskRunner,
		logger,
	))
	app.eventEmitter = emitter

	// Initialize URL extractor
	app.extractor = extract.NewExtractor(
		cfg.Extract.ProxyBaseURL,
		time.Duration(cfg.Extract.TimeoutSeconds)*time.Second,
		logger,
	)

	// Initialize content service
	app.contentService, err = service.NewContentService(
		app.fragmentStore,
		app.copyStore,
		app.settingsStore,
		app.orchestrator,
		app.registry,
		app.extractor,
		app.eventEmitter,
		cfg.LLM.ThinkingBudget,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupTaskRunner initializes and starts the background task processor.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	runnerCfg := task.DefaultTaskRunnerConfig()
	runnerCfg.QueueSize = app.config.Task.QueueSize
	runnerCfg.WorkerCount = app.config.Task.WorkerCount

	taskRunner := task.NewTaskRunner(app.taskStore, runnerCfg, app.logger)
	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	return taskRunner, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
