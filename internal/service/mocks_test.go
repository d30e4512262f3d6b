package service

import (
	"context"
	"sync"

	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/events"
	"github.com/phrazzld/moments-api/internal/generation"
	"github.com/phrazzld/moments-api/internal/notify"
	"github.com/stretchr/testify/mock"
)

// MockAssistant mocks the generation.Assistant interface
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) DraftPlan(ctx context.Context, req generation.PlanRequest) (*domain.PlanDraft, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanDraft), args.Error(1)
}

func (m *MockAssistant) ReflectionInsight(ctx context.Context, req generation.InsightRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockCapability mocks the notify.Capability interface
type MockCapability struct {
	mock.Mock
}

func (m *MockCapability) Permission(ctx context.Context) notify.Permission {
	args := m.Called(ctx)
	return args.Get(0).(notify.Permission)
}

func (m *MockCapability) RequestPermission(ctx context.Context) (notify.Permission, error) {
	args := m.Called(ctx)
	return args.Get(0).(notify.Permission), args.Error(1)
}

func (m *MockCapability) Show(ctx context.Context, title, body string) error {
	args := m.Called(ctx, title, body)
	return args.Error(0)
}

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.Event
	err    error
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *recordingEmitter) types() []events.Type {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]events.Type, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Type
	}
	return out
}
