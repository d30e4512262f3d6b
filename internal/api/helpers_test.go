package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/events"
	"github.com/phrazzld/moments-api/internal/generation"
	"github.com/phrazzld/moments-api/internal/mocks"
	"github.com/phrazzld/moments-api/internal/notify"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/platform/memory"
	"github.com/phrazzld/moments-api/internal/service"
	"github.com/phrazzld/moments-api/internal/store"
	"github.com/stretchr/testify/require"
)

// fixedNow is Monday 2025-03-10 09:30 UTC.
var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func today() domain.Date { return domain.DateOf(fixedNow) }

type testServer struct {
	router    chi.Router
	repo      *service.MomentRepository
	workflow  *service.Workflow
	settings  *service.SettingsService
	assistant *mocks.MockAssistant
}

// newTestServer wires the handlers over an in-memory store. A nil assistant
// leaves the planner disabled.
func newTestServer(t *testing.T, assistant *mocks.MockAssistant) *testServer {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	now := func() time.Time { return fixedNow }

	gw, err := store.NewGateway(memory.NewRecordStore(), log)
	require.NoError(t, err)
	emitter := events.NewInMemoryEventEmitter(log)

	repo, err := service.NewMomentRepository(gw, emitter, now, log)
	require.NoError(t, err)
	workflow, err := service.NewWorkflow(repo, log)
	require.NoError(t, err)
	settings, err := service.NewSettingsService(gw, emitter, now, log)
	require.NoError(t, err)
	reminders, err := service.NewReminderService(repo, notify.NewLogCapability(notify.PermissionDefault, log), emitter, now, log)
	require.NoError(t, err)
	emitter.RegisterHandler(reminders)

	var gen generation.Assistant
	if assistant != nil {
		gen = assistant
	}
	planner, err := service.NewPlanner(gen, settings, repo, log)
	require.NoError(t, err)

	moments := NewMomentHandler(repo, workflow)
	analytics := NewAnalyticsHandler(service.NewDashboard(repo))
	settingsHandler := NewSettingsHandler(settings)
	notifications := NewNotificationHandler(reminders)
	assistantHandler := NewAssistantHandler(planner)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/moments", moments.List)
		r.Post("/moments", moments.Create)
		r.Route("/moments/{id}", func(r chi.Router) {
			r.Get("/", moments.Get)
			r.Put("/", moments.Update)
			r.Delete("/", moments.Delete)
			r.Post("/tasks", moments.AddTask)
			r.Post("/tasks/{taskID}/toggle", moments.ToggleTask)
			r.Post("/emotions", moments.LogEmotion)
			r.Post("/complete", moments.Complete)
			r.Post("/archive", moments.Archive)
			r.Post("/postpone", moments.Postpone)
			r.Post("/select", moments.Select)
			r.Post("/insight", assistantHandler.Insight)
		})
		r.Get("/selection", moments.Selection)
		r.Delete("/selection", moments.ClearSelection)
		r.Get("/analytics/summary", analytics.Summary)
		r.Get("/settings", settingsHandler.Get)
		r.Put("/settings", settingsHandler.Update)
		r.Get("/notifications/permission", notifications.Permission)
		r.Post("/notifications/permission", notifications.RequestPermission)
		r.Post("/assistant/plan", assistantHandler.Plan)
	})

	return &testServer{
		router:    r,
		repo:      repo,
		workflow:  workflow,
		settings:  settings,
		assistant: assistant,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) create(t *testing.T, title string, date domain.Date, priority domain.Priority) *domain.Moment {
	t.Helper()
	m, err := s.workflow.Dispatch(context.Background(), service.CreateMoment{Input: domain.MomentInput{
		Title:    title,
		Date:     date,
		Priority: priority,
	}})
	require.NoError(t, err)
	return m
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rr)["error"]
}

func path(parts ...string) string {
	p := "/api"
	for _, part := range parts {
		p += "/" + part
	}
	return p
}
