package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/moments-api/internal/api"
	apiMiddleware "github.com/phrazzld/moments-api/internal/api/middleware"
	"github.com/phrazzld/moments-api/internal/api/shared"
)

// setupRouter creates the router with all routes and middleware. The API
// group requires a bearer token when authentication is enabled.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.owner)
	momentHandler := api.NewMomentHandler(app.moments, app.workflow)
	analyticsHandler := api.NewAnalyticsHandler(app.dashboard)
	settingsHandler := api.NewSettingsHandler(app.settings)
	notificationHandler := api.NewNotificationHandler(app.reminders)
	assistantHandler := api.NewAssistantHandler(app.planner)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			if app.owner != nil {
				r.Use(apiMiddleware.NewAuthMiddleware(app.owner.Tokens()).Authenticate)
			}

			r.Get("/moments", momentHandler.List)
			r.Post("/moments", momentHandler.Create)
			r.Route("/moments/{id}", func(r chi.Router) {
				r.Get("/", momentHandler.Get)
				r.Put("/", momentHandler.Update)
				r.Delete("/", momentHandler.Delete)
				r.Post("/tasks", momentHandler.AddTask)
				r.Post("/tasks/{taskID}/toggle", momentHandler.ToggleTask)
				r.Post("/emotions", momentHandler.LogEmotion)
				r.Post("/complete", momentHandler.Complete)
				r.Post("/archive", momentHandler.Archive)
				r.Post("/postpone", momentHandler.Postpone)
				r.Post("/select", momentHandler.Select)
				r.Post("/insight", assistantHandler.Insight)
			})
			r.Get("/selection", momentHandler.Selection)
			r.Delete("/selection", momentHandler.ClearSelection)

			r.Get("/analytics/summary", analyticsHandler.Summary)

			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Update)

			r.Get("/notifications/permission", notificationHandler.Permission)
			r.Post("/notifications/permission", notificationHandler.RequestPermission)

			r.Post("/assistant/plan", assistantHandler.Plan)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{Status: "ok"})
	})

	return r
}
