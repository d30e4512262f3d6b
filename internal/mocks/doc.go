// Package mocks provides hand-written test doubles shared by several test
// packages.
//
// Each mock exposes function fields for per-test behavior and falls back to
// plain default values when a function is not set:
//
//	assistant := &mocks.MockAssistant{
//	    DraftPlanFn: func(ctx context.Context, req generation.PlanRequest) (*domain.PlanDraft, error) {
//	        return &domain.PlanDraft{Title: req.Goal}, nil
//	    },
//	}
//
// Packages with a single consumer keep their doubles next to their tests.
package mocks
