package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/moments-api/internal/config"
	"github.com/phrazzld/moments-api/internal/events"
	"github.com/phrazzld/moments-api/internal/generation"
	"github.com/phrazzld/moments-api/internal/notify"
	"github.com/phrazzld/moments-api/internal/platform/gemini"
	"github.com/phrazzld/moments-api/internal/platform/storage"
	"github.com/phrazzld/moments-api/internal/service"
	"github.com/phrazzld/moments-api/internal/service/auth"
	"github.com/phrazzld/moments-api/internal/store"
	"github.com/phrazzld/moments-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Storage
	records store.RecordStore
	closer  io.Closer
	gateway *store.Gateway

	// Event system
	eventEmitter *events.InMemoryEventEmitter

	// Services
	moments   *service.MomentRepository
	workflow  *service.Workflow
	settings  *service.SettingsService
	reminders *service.ReminderService
	planner   *service.Planner
	dashboard *service.Dashboard
	owner     *auth.OwnerAuthenticator

	// Background jobs
	runner *task.Runner
}

// newApplication creates an application with all dependencies initialized
// and the persisted state loaded.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	records, closer, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	app, err := buildApplication(ctx, cfg, logger, records, time.Now)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	app.closer = closer
	return app, nil
}

// buildApplication wires the services over records.
func buildApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	records store.RecordStore,
	now func() time.Time,
) (*application, error) {
	app := &application{
		config:       cfg,
		logger:       logger,
		records:      records,
		eventEmitter: events.NewInMemoryEventEmitter(logger),
		runner:       task.NewRunner(logger),
	}

	var err error
	app.gateway, err = store.NewGateway(records, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage gateway: %w", err)
	}

	app.moments, err = service.NewMomentRepository(app.gateway, app.eventEmitter, now, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create moment repository: %w", err)
	}

	app.workflow, err = service.NewWorkflow(app.moments, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	app.settings, err = service.NewSettingsService(app.gateway, app.eventEmitter, now, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings service: %w", err)
	}

	permission, err := notify.ParsePermission(cfg.Notify.Permission)
	if err != nil {
		return nil, err
	}
	app.reminders, err = service.NewReminderService(
		app.moments,
		notify.NewLogCapability(permission, logger),
		app.eventEmitter,
		now,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder service: %w", err)
	}
	app.eventEmitter.RegisterHandler(app.reminders)

	var assistant generation.Assistant
	if cfg.LLM.GeminiAPIKey != "" {
		a, err := gemini.NewAssistant(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize planning assistant: %w", err)
		}
		assistant = a
		logger.Info("Planning assistant initialized", "model", cfg.LLM.ModelName)
	}
	app.planner, err = service.NewPlanner(assistant, app.settings, app.moments, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create planner: %w", err)
	}

	app.dashboard = service.NewDashboard(app.moments)

	app.owner, err = auth.NewOwnerAuthenticator(cfg.Auth, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authentication: %w", err)
	}
	if app.owner == nil {
		logger.Warn("Authentication disabled: no password hash configured")
	}

	if interval := cfg.Notify.SweepInterval(); interval > 0 {
		if err := app.runner.Schedule(app.reminders.SweepJob(), interval); err != nil {
			return nil, fmt.Errorf("failed to schedule reminder sweep: %w", err)
		}
	}

	app.settings.Load(ctx)
	app.moments.Load(ctx)

	logger.Info("Application initialized successfully",
		"moment_count", len(app.moments.Snapshot()))
	return app, nil
}

// Run starts the background jobs and the HTTP server and blocks until ctx
// is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	if err := app.runner.Start(); err != nil {
		return fmt.Errorf("failed to start task runner: %w", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.runner.Stop()

	if app.closer != nil {
		if err := app.closer.Close(); err != nil {
			app.logger.Error("Error closing record store", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
