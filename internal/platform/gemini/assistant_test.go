package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/moments-api/internal/config"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/generation"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	resp   *genai.GenerateContentResponse
	err    error
	calls  int
	model  string
	prompt string
	config *genai.GenerateContentConfig
	hasDL  bool
}

func (f *fakeGenerator) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	_, f.hasDL = ctx.Deadline()
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func newTestAssistant(t *testing.T, gen contentGenerator) *Assistant {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	return newAssistant(gen, "gemini-test", 5*time.Second, log)
}

const validPlan = `{
  "title": "Run a half marathon",
  "type": "goal",
  "priority": "high",
  "notes": "Build mileage slowly.",
  "tasks": ["Buy shoes", "Run 3 times a week", "Do a 15k test run"]
}`

func TestDraftPlan(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(validPlan)}
	a := newTestAssistant(t, gen)

	draft, err := a.DraftPlan(context.Background(), generation.PlanRequest{
		Goal:     "I want to run a half marathon in spring",
		Language: language.German,
	})
	require.NoError(t, err)

	assert.Equal(t, "Run a half marathon", draft.Title)
	assert.Equal(t, domain.MomentTypeGoal, draft.Type)
	assert.Equal(t, domain.PriorityHigh, draft.Priority)
	assert.Len(t, draft.Tasks, 3)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "gemini-test", gen.model)
	assert.True(t, gen.hasDL, "request should carry the configured timeout")
	require.NotNil(t, gen.config)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	require.NotNil(t, gen.config.ResponseSchema)
	assert.Contains(t, gen.config.ResponseSchema.Required, "tasks")
	assert.Contains(t, gen.prompt, "half marathon in spring")
	assert.Contains(t, gen.prompt, "German")
	assert.Contains(t, gen.prompt, "study, work, personal, travel, goal")
}

func TestDraftPlanEmptyGoal(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(validPlan)}
	a := newTestAssistant(t, gen)

	_, err := a.DraftPlan(context.Background(), generation.PlanRequest{Goal: "   "})
	assert.ErrorIs(t, err, generation.ErrEmptyRequest)
	assert.Zero(t, gen.calls)
}

func TestDraftPlanRejectsPartialDrafts(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"title": "Trip"`},
		{"unknown type", `{"title":"Trip","type":"vacation","priority":"low","notes":"","tasks":[]}`},
		{"unknown priority", `{"title":"Trip","type":"travel","priority":"urgent","notes":"","tasks":[]}`},
		{"missing title", `{"title":"","type":"travel","priority":"low","notes":"","tasks":[]}`},
		{"blank task", `{"title":"Trip","type":"travel","priority":"low","notes":"","tasks":["Pack", " "]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAssistant(t, &fakeGenerator{resp: textResponse(tc.body)})
			draft, err := a.DraftPlan(context.Background(), generation.PlanRequest{Goal: "a trip"})
			assert.ErrorIs(t, err, generation.ErrInvalidResponse)
			assert.Nil(t, draft)
		})
	}
}

func TestDraftPlanResponseErrors(t *testing.T) {
	tests := []struct {
		name    string
		gen     *fakeGenerator
		wantErr error
	}{
		{
			name:    "transport failure",
			gen:     &fakeGenerator{err: errors.New("connection reset")},
			wantErr: generation.ErrTransientFailure,
		},
		{
			name: "prompt blocked",
			gen: &fakeGenerator{resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
					BlockReason: genai.BlockedReasonSafety,
				},
			}},
			wantErr: generation.ErrContentBlocked,
		},
		{
			name: "safety finish",
			gen: &fakeGenerator{resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}},
			wantErr: generation.ErrContentBlocked,
		},
		{
			name:    "no candidates",
			gen:     &fakeGenerator{resp: &genai.GenerateContentResponse{}},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "nil response",
			gen:     &fakeGenerator{},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "empty text",
			gen:     &fakeGenerator{resp: textResponse("  ")},
			wantErr: generation.ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAssistant(t, tc.gen)
			_, err := a.DraftPlan(context.Background(), generation.PlanRequest{Goal: "learn piano"})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, 1, tc.gen.calls, "requests are never retried")
		})
	}
}

func TestReflectionInsight(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m, err := domain.NewMoment(domain.MomentInput{
		Title: "Finish thesis",
		Date:  domain.NewDate(2025, 3, 20),
		Type:  domain.MomentTypeStudy,
		Tasks: []string{"Write chapter 3", "Send draft"},
	}, now)
	require.NoError(t, err)
	m.Tasks[0].Completed = true
	_, err = m.LogEmotion(domain.EmotionStressed, "deadline close", now.Add(time.Hour))
	require.NoError(t, err)

	gen := &fakeGenerator{resp: textResponse("  You are halfway there. Keep going.\n")}
	a := newTestAssistant(t, gen)

	insight, err := a.ReflectionInsight(context.Background(), generation.InsightRequest{
		Moment:   *m,
		Language: language.English,
	})
	require.NoError(t, err)
	assert.Equal(t, "You are halfway there. Keep going.", insight)

	assert.Nil(t, gen.config)
	assert.Contains(t, gen.prompt, "Finish thesis")
	assert.Contains(t, gen.prompt, "Tasks completed: 1 of 2")
	assert.Contains(t, gen.prompt, "2025-03-20")
	assert.Contains(t, gen.prompt, "stressed (deadline close)")
	assert.NotContains(t, gen.prompt, "Reflection:")
}

func TestReflectionInsightIncludesReflection(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m, err := domain.NewMoment(domain.MomentInput{Title: "Trip to Lisbon", Date: domain.NewDate(2025, 3, 1)}, now)
	require.NoError(t, err)
	require.NoError(t, m.Complete(domain.Reflection{Rating: 4, Lessons: "Pack lighter"}, domain.DateOf(now)))

	gen := &fakeGenerator{resp: textResponse("Great trip.")}
	a := newTestAssistant(t, gen)

	_, err = a.ReflectionInsight(context.Background(), generation.InsightRequest{Moment: *m})
	require.NoError(t, err)
	assert.True(t, strings.Contains(gen.prompt, "rated 4 of 5"))
	assert.Contains(t, gen.prompt, "Pack lighter")
}

func TestReflectionInsightEmptyMoment(t *testing.T) {
	gen := &fakeGenerator{}
	a := newTestAssistant(t, gen)

	_, err := a.ReflectionInsight(context.Background(), generation.InsightRequest{})
	assert.ErrorIs(t, err, generation.ErrEmptyRequest)
	assert.Zero(t, gen.calls)
}

func TestNewAssistantValidatesConfig(t *testing.T) {
	log, _ := logger.NewTestLogger(t)

	_, err := NewAssistant(context.Background(), config.LLMConfig{ModelName: "m", TimeoutSeconds: 1}, log)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewAssistant(context.Background(), config.LLMConfig{GeminiAPIKey: "k", TimeoutSeconds: 1}, log)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewAssistant(context.Background(), config.LLMConfig{GeminiAPIKey: "k", ModelName: "m"}, nil)
	assert.Error(t, err)
}
