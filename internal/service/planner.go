package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/generation"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/redact"
	"golang.org/x/text/language"
)

// Planner fronts the AI assistant. Every assistant failure is reported as
// ErrAssistantFailed and nothing is retried.
type Planner struct {
	assistant generation.Assistant
	settings  interface{ Get() domain.Settings }
	moments   *MomentRepository
	logger    *slog.Logger
}

// NewPlanner creates a Planner. A nil assistant yields a planner whose
// operations return ErrAssistantDisabled.
func NewPlanner(
	assistant generation.Assistant,
	settings *SettingsService,
	moments *MomentRepository,
	log *slog.Logger,
) (*Planner, error) {
	if settings == nil {
		return nil, domain.NewValidationError("settings", "cannot be nil", domain.ErrValidation)
	}
	if moments == nil {
		return nil, domain.NewValidationError("moments", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Planner{
		assistant: assistant,
		settings:  settings,
		moments:   moments,
		logger:    log.With("component", "planner"),
	}, nil
}

// Enabled reports whether an assistant is configured.
func (p *Planner) Enabled() bool {
	return p.assistant != nil
}

// DraftPlan asks the assistant for a plan for goal. The draft is complete
// and valid, or an error is returned.
func (p *Planner) DraftPlan(ctx context.Context, goal string) (*domain.PlanDraft, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	if p.assistant == nil {
		return nil, ErrAssistantDisabled
	}
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, domain.NewValidationError("goal", "cannot be empty", nil)
	}

	draft, err := p.assistant.DraftPlan(ctx, generation.PlanRequest{
		Goal:     goal,
		Language: p.language(),
	})
	if err != nil {
		log.Error("assistant failed to draft a plan", "error", redact.Error(err))
		return nil, ErrAssistantFailed
	}
	return draft, nil
}

// Insight asks the assistant for a short insight about one moment.
func (p *Planner) Insight(ctx context.Context, id uuid.UUID) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	if p.assistant == nil {
		return "", ErrAssistantDisabled
	}
	m, err := p.moments.Get(id)
	if err != nil {
		return "", err
	}

	insight, err := p.assistant.ReflectionInsight(ctx, generation.InsightRequest{
		Moment:   *m,
		Language: p.language(),
	})
	if err != nil {
		log.Error("assistant failed to write an insight",
			"moment_id", id,
			"error", redact.Error(err))
		return "", ErrAssistantFailed
	}
	return insight, nil
}

func (p *Planner) language() language.Tag {
	tag, err := domain.ParseLanguage(p.settings.Get().Language)
	if err != nil {
		return language.English
	}
	return tag
}
