package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/premedly/studyplan-api/internal/api"
	apiMiddleware "github.com/premedly/studyplan-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	sourceMiddleware := apiMiddleware.NewSourceAuthMiddleware(app.sourceVerifier)

	masteryHandler := api.NewMasteryHandler(app.masteryService, app.logger)
	ingestHandler := api.NewIngestHandler(app.ingestService, app.logger)
	planHandler := api.NewPlanHandler(app.schedulerService, app.logger)
	progressionHandler := api.NewProgressionHandler(app.logger)

	r.Route("/api", func(r chi.Router) {
		// Server-to-server ingestion, authenticated by shared secret.
		r.Group(func(r chi.Router) {
			r.Use(sourceMiddleware.VerifySource)
			r.Post("/ingest/source", ingestHandler.IngestSourceResult)
		})

		// User-facing routes, authenticated by bearer token.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/mastery/weakest", masteryHandler.GetWeakestCategories)
			r.Post("/mastery/categories/{id}/complete", masteryHandler.MarkCategoryCompleted)

			r.Post("/pulses", ingestHandler.IngestPracticeResult)
			r.Get("/pulses", ingestHandler.ListPulses)

			r.Post("/plans", planHandler.CreatePlan)
			r.Get("/plans/current", planHandler.GetPlan)
			r.Delete("/plans/current", planHandler.ResetPlan)
			r.Post("/activities/{id}/replace", planHandler.ReplaceActivity)
			r.Patch("/activities/{id}/status", planHandler.UpdateActivityStatus)

			r.Post("/progression/level", progressionHandler.ComputeLevel)
			r.Get("/progression/yield", progressionHandler.ComputeYield)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
