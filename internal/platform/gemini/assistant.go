package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/moments-api/internal/config"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/generation"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/redact"
	"google.golang.org/genai"
)

// contentGenerator is the part of the genai client the assistant calls.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Assistant implements generation.Assistant with the Gemini API.
type Assistant struct {
	gen     contentGenerator
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

var _ generation.Assistant = (*Assistant)(nil)

// NewAssistant creates a Gemini-backed assistant from cfg.
func NewAssistant(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (*Assistant, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.ModelName) == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, redact.Error(err))
	}

	return newAssistant(client.Models, cfg.ModelName, cfg.Timeout(), log), nil
}

func newAssistant(gen contentGenerator, model string, timeout time.Duration, log *slog.Logger) *Assistant {
	return &Assistant{
		gen:     gen,
		model:   model,
		timeout: timeout,
		logger:  log.With("component", "gemini_assistant", "model", model),
	}
}

// DraftPlan asks the model for a plan matching the goal. The draft is
// returned only when every field is usable.
func (a *Assistant) DraftPlan(ctx context.Context, req generation.PlanRequest) (*domain.PlanDraft, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	prompt, err := planPrompt(req)
	if err != nil {
		return nil, err
	}

	text, err := a.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   planSchema(),
	})
	if err != nil {
		return nil, err
	}

	var resp planResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		log.WarnContext(ctx, "model returned malformed plan JSON",
			"response_length", len(text),
			"error", redact.Error(err))
		return nil, fmt.Errorf("%w: plan is not valid JSON: %v", generation.ErrInvalidResponse, err)
	}

	draft := resp.draft()
	if err := draft.Validate(); err != nil {
		log.WarnContext(ctx, "model returned an unusable plan", "error", err)
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	log.InfoContext(ctx, "plan drafted",
		"type", draft.Type,
		"task_count", len(draft.Tasks))
	return draft, nil
}

// ReflectionInsight asks the model for a short insight about a moment.
func (a *Assistant) ReflectionInsight(ctx context.Context, req generation.InsightRequest) (string, error) {
	prompt, err := insightPrompt(req)
	if err != nil {
		return "", err
	}

	text, err := a.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}

	insight := strings.TrimSpace(text)
	if insight == "" {
		return "", fmt.Errorf("%w: empty insight", generation.ErrInvalidResponse)
	}
	return insight, nil
}

// generate performs one model call under the configured timeout and returns
// the concatenated text of the first candidate.
func (a *Assistant) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(prompt), cfg)
	if err != nil {
		log.ErrorContext(ctx, "gemini request failed",
			"duration_ms", time.Since(start).Milliseconds(),
			"error", redact.Error(err))
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, redact.Error(err))
	}
	log.DebugContext(ctx, "gemini request completed",
		"duration_ms", time.Since(start).Milliseconds())

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filter", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: candidate has no text", generation.ErrInvalidResponse)
	}
	return sb.String(), nil
}
