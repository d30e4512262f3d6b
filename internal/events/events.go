package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type names a kind of committed change.
type Type string

// Event types emitted by the core.
const (
	MomentCreated     Type = "moment.created"
	MomentUpdated     Type = "moment.updated"
	MomentDeleted     Type = "moment.deleted"
	MomentCompleted   Type = "moment.completed"
	MomentArchived    Type = "moment.archived"
	MomentPostponed   Type = "moment.postponed"
	SettingsChanged   Type = "settings.changed"
	PermissionChanged Type = "notify.permission_changed"
)

// Event describes one committed change. MomentID is uuid.Nil for events that
// do not concern a single moment.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       Type      `json:"type"`
	MomentID   uuid.UUID `json:"moment_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent creates an event with a fresh ID.
func NewEvent(eventType Type, momentID uuid.UUID, at time.Time) *Event {
	return &Event{
		ID:         uuid.New(),
		Type:       eventType,
		MomentID:   momentID,
		OccurredAt: at,
	}
}

// IsMomentEvent reports whether the event concerns the moment collection.
func (e *Event) IsMomentEvent() bool {
	switch e.Type {
	case MomentCreated, MomentUpdated, MomentDeleted,
		MomentCompleted, MomentArchived, MomentPostponed:
		return true
	default:
		return false
	}
}

// EventHandler defines the interface for components that handle events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent implements EventHandler.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines the interface for components that emit events.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *Event) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *Event) error { return nil }
