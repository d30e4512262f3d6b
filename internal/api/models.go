package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/domain/analytics"
	"github.com/phrazzld/moments-api/internal/notify"
	"github.com/phrazzld/moments-api/internal/service"
)

// LoginRequest defines the payload for the owner login endpoint.
type LoginRequest struct {
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// CreateMomentRequest defines the payload for creating a moment.
type CreateMomentRequest struct {
	Title          string            `json:"title"           validate:"required,max=200"`
	Date           domain.Date       `json:"date"`
	Type           domain.MomentType `json:"type"            validate:"omitempty,oneof=study work personal travel goal"`
	Priority       domain.Priority   `json:"priority"        validate:"omitempty,oneof=low medium high"`
	Notes          string            `json:"notes"           validate:"max=5000"`
	Tasks          []string          `json:"tasks"           validate:"dive,required"`
	InitialEmotion domain.Emotion    `json:"initial_emotion"`
}

// Input converts the request into domain input.
func (r CreateMomentRequest) Input() domain.MomentInput {
	return domain.MomentInput{
		Title:          r.Title,
		Date:           r.Date,
		Type:           r.Type,
		Priority:       r.Priority,
		Notes:          r.Notes,
		Tasks:          r.Tasks,
		InitialEmotion: r.InitialEmotion,
	}
}

// UpdateMomentRequest defines the payload for editing a moment. Only the
// editable fields are accepted; lifecycle fields are managed by the
// dedicated endpoints.
type UpdateMomentRequest struct {
	Title    string            `json:"title"    validate:"required,max=200"`
	Date     domain.Date       `json:"date"`
	Type     domain.MomentType `json:"type"     validate:"required,oneof=study work personal travel goal"`
	Priority domain.Priority   `json:"priority" validate:"required,oneof=low medium high"`
	Notes    string            `json:"notes"    validate:"max=5000"`
	Tasks    []domain.Task     `json:"tasks"`
}

// command converts the request into an edit of moment id. Omitted tasks
// keep the stored list.
func (r UpdateMomentRequest) command(id uuid.UUID) service.EditMoment {
	return service.EditMoment{
		MomentID: id,
		Title:    &r.Title,
		Date:     &r.Date,
		Type:     &r.Type,
		Priority: &r.Priority,
		Notes:    &r.Notes,
		Tasks:    r.Tasks,
	}
}

// AddTaskRequest defines the payload for adding a subtask.
type AddTaskRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// LogEmotionRequest defines the payload for an emotional check-in.
type LogEmotionRequest struct {
	Emotion domain.Emotion `json:"emotion" validate:"required"`
	Note    string         `json:"note"    validate:"max=1000"`
}

// CompleteRequest defines the payload for completing a moment.
type CompleteRequest struct {
	Rating     int    `json:"rating"`
	Lessons    string `json:"lessons"    validate:"max=5000"`
	Repeatable bool   `json:"repeatable"`
}

// SettingsRequest defines the payload for replacing the settings.
type SettingsRequest struct {
	Theme    domain.Theme `json:"theme"    validate:"required"`
	Language string       `json:"language" validate:"required"`
}

// PlanRequest defines the payload for drafting a plan from a goal.
type PlanRequest struct {
	Goal string `json:"goal" validate:"required,max=1000"`
}

// MomentResponse is a moment together with the values derived at request time.
type MomentResponse struct {
	domain.Moment
	DaysRemaining *int              `json:"days_remaining,omitempty"`
	PastDue       bool              `json:"past_due"`
	Urgency       analytics.Urgency `json:"urgency,omitempty"`
	TaskRatio     float64           `json:"task_ratio"`
	Selected      bool              `json:"selected"`
}

// SelectionResponse reports the current selection, if any.
type SelectionResponse struct {
	Selected *MomentResponse `json:"selected"`
}

// InsightResponse carries the assistant's reflection on a moment.
type InsightResponse struct {
	MomentID uuid.UUID `json:"moment_id"`
	Insight  string    `json:"insight"`
}

// PermissionResponse reports the notification permission.
type PermissionResponse struct {
	Permission notify.Permission `json:"permission"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// newMomentResponse derives the response view of m at now.
func newMomentResponse(m domain.Moment, now time.Time, selected uuid.UUID) MomentResponse {
	resp := MomentResponse{
		Moment:    m,
		TaskRatio: analytics.TaskCompletionRatio(m),
		Selected:  selected != uuid.Nil && selected == m.ID,
	}
	if m.Tasks == nil {
		resp.Moment.Tasks = []domain.Task{}
	}
	if phase, ok := m.Phase(now).(domain.ActivePhase); ok {
		days := phase.DaysRemaining
		resp.DaysRemaining = &days
		resp.PastDue = phase.PastDue()
		resp.Urgency = analytics.Classify(m, now)
	}
	return resp
}
