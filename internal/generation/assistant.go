package generation

import (
	"context"

	"github.com/phrazzld/moments-api/internal/domain"
	"golang.org/x/text/language"
)

// PlanRequest asks for a plan draft from a free-text goal description.
type PlanRequest struct {
	Goal     string
	Language language.Tag
}

// InsightRequest asks for a short reflection on one moment.
type InsightRequest struct {
	Moment   domain.Moment
	Language language.Tag
}

// Assistant is the external text-in, structured-data-out collaborator.
// Implementations return a complete, validated result or an error; partial
// results are never returned.
type Assistant interface {
	// DraftPlan proposes a moment for the described goal.
	DraftPlan(ctx context.Context, req PlanRequest) (*domain.PlanDraft, error)

	// ReflectionInsight writes a short insight about the moment's progress
	// or its reflection.
	ReflectionInsight(ctx context.Context, req InsightRequest) (string, error)
}
