package domain

import (
	"errors"
	"strings"
)

// ErrEmptyPlan is returned when a plan draft carries no usable title.
var ErrEmptyPlan = errors.New("plan draft has no title")

// PlanDraft is an assistant-proposed seed for the create form. A draft is
// accepted whole or rejected whole.
type PlanDraft struct {
	Title    string     `json:"title"`
	Type     MomentType `json:"type"`
	Priority Priority   `json:"priority"`
	Notes    string     `json:"notes"`
	Tasks    []string   `json:"tasks"`
}

// Validate checks that every field of the draft is usable.
func (p *PlanDraft) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyPlan)
	}
	if !IsValidMomentType(p.Type) {
		return NewValidationError("type", "is not a known moment type", ErrInvalidMomentType)
	}
	if !IsValidPriority(p.Priority) {
		return NewValidationError("priority", "must be low, medium or high", ErrInvalidPriority)
	}
	for _, task := range p.Tasks {
		if strings.TrimSpace(task) == "" {
			return NewValidationError("tasks", "cannot contain empty text", ErrEmptyTaskText)
		}
	}
	return nil
}

// Input converts the draft into create-form input for the given date and
// initial emotion.
func (p *PlanDraft) Input(date Date, emotion Emotion) MomentInput {
	return MomentInput{
		Title:          p.Title,
		Date:           date,
		Type:           p.Type,
		Priority:       p.Priority,
		Notes:          p.Notes,
		Tasks:          append([]string(nil), p.Tasks...),
		InitialEmotion: emotion,
	}
}
