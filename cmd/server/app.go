package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/premedly/studyplan-api/internal/config"
	"github.com/premedly/studyplan-api/internal/events"
	"github.com/premedly/studyplan-api/internal/platform/postgres"
	"github.com/premedly/studyplan-api/internal/service"
	"github.com/premedly/studyplan-api/internal/service/auth"
	"github.com/premedly/studyplan-api/internal/store"
	"github.com/premedly/studyplan-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	categoryStore store.CategoryStore
	profileStore  store.KnowledgeProfileStore
	pulseStore    store.DataPulseStore
	planStore     store.StudyPlanStore
	activityStore store.CalendarActivityStore
	taskStore     task.TaskStore

	// Service interfaces
	jwtService       auth.JWTService
	sourceVerifier   auth.SourceVerifier
	masteryService   service.MasteryService
	ingestService    service.IngestService
	schedulerService service.SchedulerService

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

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT validation service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.sourceVerifier = auth.NewSourceVerifier(cfg.Ingest)

	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.pulseStore = postgres.NewPostgresPulseStore(db, logger)
	app.planStore = postgres.NewPostgresPlanStore(db, logger)
	app.activityStore = postgres.NewPostgresActivityStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.masteryService, err = service.NewMasteryService(db, app.profileStore, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mastery service: %w", err)
	}

	app.ingestService, err = service.NewIngestService(
		app.categoryStore,
		app.pulseStore,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingest service: %w", err)
	}

	app.schedulerService, err = service.NewSchedulerService(
		db,
		app.planStore,
		app.activityStore,
		app.masteryService,
		cfg.Scheduler,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler service: %w", err)
	}

	// The fold task factory doubles as the rehydrator, so tasks recovered
	// from the database after a restart regain their execution logic.
	foldTaskFactory := task.NewMasteryFoldTaskFactory(app.masteryService, logger)

	app.taskRunner, err = setupTaskRunner(app, foldTaskFactory)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	taskFactoryHandler := task.NewTaskFactoryEventHandler(
		foldTaskFactory,
		app.taskRunner,
		logger,
	)

	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(taskFactoryHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupTaskRunner initializes and starts the background task processor.
func setupTaskRunner(app *application, rehydrator task.Rehydrator) (*task.TaskRunner, error) {
	taskRunner := task.NewTaskRunner(app.taskStore, rehydrator, task.TaskRunnerConfig{
		QueueSize:    app.config.Task.QueueSize,
		WorkerCount:  app.config.Task.WorkerCount,
		StuckTaskAge: time.Duration(app.config.Task.StuckTaskAgeMinutes) * time.Minute,
	}, app.logger)

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
