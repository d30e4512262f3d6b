package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/generation"
)

// MockAssistant implements generation.Assistant for testing
type MockAssistant struct {
	// DraftPlanFn allows test cases to mock the DraftPlan behavior
	DraftPlanFn func(ctx context.Context, req generation.PlanRequest) (*domain.PlanDraft, error)

	// ReflectionInsightFn allows test cases to mock the ReflectionInsight behavior
	ReflectionInsightFn func(ctx context.Context, req generation.InsightRequest) (string, error)

	// Default values used when functions aren't explicitly defined
	Draft   *domain.PlanDraft
	Insight string
	Err     error

	mu           sync.Mutex
	planCalls    []generation.PlanRequest
	insightCalls []generation.InsightRequest
}

// NewMockAssistantWithError creates a MockAssistant whose every call fails with err.
func NewMockAssistantWithError(err error) *MockAssistant {
	return &MockAssistant{Err: err}
}

// DraftPlan implements the generation.Assistant interface
func (m *MockAssistant) DraftPlan(ctx context.Context, req generation.PlanRequest) (*domain.PlanDraft, error) {
	m.mu.Lock()
	m.planCalls = append(m.planCalls, req)
	m.mu.Unlock()

	if m.DraftPlanFn != nil {
		return m.DraftPlanFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Draft, nil
}

// ReflectionInsight implements the generation.Assistant interface
func (m *MockAssistant) ReflectionInsight(ctx context.Context, req generation.InsightRequest) (string, error) {
	m.mu.Lock()
	m.insightCalls = append(m.insightCalls, req)
	m.mu.Unlock()

	if m.ReflectionInsightFn != nil {
		return m.ReflectionInsightFn(ctx, req)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Insight, nil
}

// Calls returns the total number of assistant calls.
func (m *MockAssistant) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.planCalls) + len(m.insightCalls)
}

// PlanRequests returns a copy of the requests passed to DraftPlan.
func (m *MockAssistant) PlanRequests() []generation.PlanRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.PlanRequest(nil), m.planCalls...)
}

// InsightRequests returns a copy of the requests passed to ReflectionInsight.
func (m *MockAssistant) InsightRequests() []generation.InsightRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.InsightRequest(nil), m.insightCalls...)
}

// Reset clears the call tracking state
func (m *MockAssistant) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planCalls = nil
	m.insightCalls = nil
}
