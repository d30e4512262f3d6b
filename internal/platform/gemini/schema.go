package gemini

import (
	"github.com/phrazzld/moments-api/internal/domain"
	"google.golang.org/genai"
)

// planResponse is the JSON shape requested from the model for plan drafts.
type planResponse struct {
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Priority string   `json:"priority"`
	Notes    string   `json:"notes"`
	Tasks    []string `json:"tasks"`
}

func (p planResponse) draft() *domain.PlanDraft {
	return &domain.PlanDraft{
		Title:    p.Title,
		Type:     domain.MomentType(p.Type),
		Priority: domain.Priority(p.Priority),
		Notes:    p.Notes,
		Tasks:    p.Tasks,
	}
}

func planSchema() *genai.Schema {
	types := make([]string, 0, len(domain.AllMomentTypes()))
	for _, t := range domain.AllMomentTypes() {
		types = append(types, string(t))
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    {Type: genai.TypeString},
			"type":     {Type: genai.TypeString, Enum: types},
			"priority": {Type: genai.TypeString, Enum: []string{"low", "medium", "high"}},
			"notes":    {Type: genai.TypeString},
			"tasks": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"title", "type", "priority", "notes", "tasks"},
	}
}
