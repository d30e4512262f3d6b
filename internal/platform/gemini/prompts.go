package gemini

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/generation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var prompts = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{"join": joinTypes}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

type planPromptData struct {
	Goal         string
	Types        []domain.MomentType
	LanguageName string
}

type insightPromptData struct {
	Moment       domain.Moment
	TasksDone    int
	LanguageName string
}

func joinTypes(types []domain.MomentType, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, sep)
}

func planPrompt(req generation.PlanRequest) (string, error) {
	goal := strings.TrimSpace(req.Goal)
	if goal == "" {
		return "", fmt.Errorf("%w: goal cannot be empty", generation.ErrEmptyRequest)
	}
	return render("plan.tmpl", planPromptData{
		Goal:         goal,
		Types:        domain.AllMomentTypes(),
		LanguageName: domain.LanguageName(req.Language),
	})
}

func insightPrompt(req generation.InsightRequest) (string, error) {
	if strings.TrimSpace(req.Moment.Title) == "" {
		return "", fmt.Errorf("%w: moment has no title", generation.ErrEmptyRequest)
	}
	done := 0
	for _, task := range req.Moment.Tasks {
		if task.Completed {
			done++
		}
	}
	return render("insight.tmpl", insightPromptData{
		Moment:       req.Moment,
		TasksDone:    done,
		LanguageName: domain.LanguageName(req.Language),
	})
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return buf.String(), nil
}
