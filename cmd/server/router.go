package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/spark-api/internal/api"
	apiMiddleware "github.com/phrazzld/spark-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	fragmentHandler := api.NewFragmentHandler(app.contentService)
	generationHandler := api.NewGenerationHandler(app.contentService)
	settingsHandler := api.NewSettingsHandler(app.contentService)
	extractHandler := api.NewExtractHandler(app.extractor)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Fragment pool
		r.Post("/fragments", fragmentHandler.CreateFragment)
		r.Get("/fragments", fragmentHandler.ListFragments)
		r.Delete("/fragments/{id}", fragmentHandler.DeleteFragment)

		// Copy generation
		r.Post("/generations", generationHandler.GenerateCopy)
		r.Get("/generations", generationHandler.ListCopies)
		r.Get("/generations/{id}", generationHandler.GetCopy)
		r.Post("/generations/{id}/reaudit", generationHandler.ReAuditCopy)

		// Settings and style analysis
		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)
		r.Post("/style/analyze", settingsHandler.AnalyzeStyle)

		// URL text extraction
		r.Post("/extract", extractHandler.Extract)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
