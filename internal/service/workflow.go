package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/events"
	"github.com/phrazzld/moments-api/internal/platform/logger"
)

// Command is a request to change the moment collection or the selection.
type Command interface {
	commandName() string
	target() uuid.UUID
}

// CreateMoment creates a new active moment.
type CreateMoment struct {
	Input domain.MomentInput
}

// UpdateMoment replaces the editable fields of an existing moment.
type UpdateMoment struct {
	Moment domain.Moment
}

// EditMoment changes the editable fields of a moment. Nil fields keep their
// stored value. The edit is applied to the stored moment under the
// repository lock, so concurrent task and emotion changes are preserved.
type EditMoment struct {
	MomentID uuid.UUID
	Title    *string
	Date     *domain.Date
	Type     *domain.MomentType
	Priority *domain.Priority
	Notes    *string
	Tasks    []domain.Task
}

// DeleteMoment removes a moment entirely.
type DeleteMoment struct {
	MomentID uuid.UUID
}

// AddTask appends a subtask to a moment.
type AddTask struct {
	MomentID uuid.UUID
	Text     string
}

// ToggleTask flips the completion flag of one subtask.
type ToggleTask struct {
	MomentID uuid.UUID
	TaskID   uuid.UUID
}

// LogEmotion appends an emotional check-in.
type LogEmotion struct {
	MomentID uuid.UUID
	Emotion  domain.Emotion
	Note     string
}

// CompleteMoment finishes an active moment with a reflection.
type CompleteMoment struct {
	MomentID   uuid.UUID
	Rating     int
	Lessons    string
	Repeatable bool
}

// ArchiveMoment retires an active moment without a reflection.
type ArchiveMoment struct {
	MomentID uuid.UUID
}

// PostponeMoment moves a past-due moment forward by domain.PostponeDays.
type PostponeMoment struct {
	MomentID uuid.UUID
}

// SelectMoment changes the current selection. uuid.Nil clears it.
type SelectMoment struct {
	MomentID uuid.UUID
}

func (CreateMoment) commandName() string   { return "create_moment" }
func (UpdateMoment) commandName() string   { return "update_moment" }
func (EditMoment) commandName() string     { return "edit_moment" }
func (DeleteMoment) commandName() string   { return "delete_moment" }
func (AddTask) commandName() string        { return "add_task" }
func (ToggleTask) commandName() string     { return "toggle_task" }
func (LogEmotion) commandName() string     { return "log_emotion" }
func (CompleteMoment) commandName() string { return "complete_moment" }
func (ArchiveMoment) commandName() string  { return "archive_moment" }
func (PostponeMoment) commandName() string { return "postpone_moment" }
func (SelectMoment) commandName() string   { return "select_moment" }

func (CreateMoment) target() uuid.UUID     { return uuid.Nil }
func (c UpdateMoment) target() uuid.UUID   { return c.Moment.ID }
func (c EditMoment) target() uuid.UUID     { return c.MomentID }
func (c DeleteMoment) target() uuid.UUID   { return c.MomentID }
func (c AddTask) target() uuid.UUID        { return c.MomentID }
func (c ToggleTask) target() uuid.UUID     { return c.MomentID }
func (c LogEmotion) target() uuid.UUID     { return c.MomentID }
func (c CompleteMoment) target() uuid.UUID { return c.MomentID }
func (c ArchiveMoment) target() uuid.UUID  { return c.MomentID }
func (c PostponeMoment) target() uuid.UUID { return c.MomentID }
func (c SelectMoment) target() uuid.UUID   { return c.MomentID }

// Workflow applies commands to the repository. It is the only path through
// which the delivery surfaces change state.
type Workflow struct {
	repo   *MomentRepository
	logger *slog.Logger
}

// NewWorkflow creates a Workflow over repo.
func NewWorkflow(repo *MomentRepository, log *slog.Logger) (*Workflow, error) {
	if repo == nil {
		return nil, domain.NewValidationError("repo", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Workflow{
		repo:   repo,
		logger: log.With("component", "workflow"),
	}, nil
}

// Dispatch applies cmd and returns the resulting moment. DeleteMoment and a
// clearing SelectMoment return nil. Refusals are returned as a
// *WorkflowError wrapping the cause; the collection is left untouched.
func (w *Workflow) Dispatch(ctx context.Context, cmd Command) (*domain.Moment, error) {
	log := logger.FromContextOrDefault(ctx, w.logger)
	if cmd == nil {
		return nil, &WorkflowError{Command: "dispatch", Err: domain.NewValidationError("command", "cannot be nil", nil)}
	}

	m, err := w.apply(ctx, cmd)
	if err != nil {
		log.Info("command refused",
			"command", cmd.commandName(),
			"moment_id", cmd.target(),
			"error", err)
		return nil, &WorkflowError{Command: cmd.commandName(), MomentID: cmd.target(), Err: err}
	}

	log.Debug("command applied", "command", cmd.commandName(), "moment_id", cmd.target())
	return m, nil
}

func (w *Workflow) apply(ctx context.Context, cmd Command) (*domain.Moment, error) {
	switch c := cmd.(type) {
	case CreateMoment:
		return w.repo.Create(ctx, c.Input)

	case UpdateMoment:
		return w.repo.Update(ctx, c.Moment)

	case EditMoment:
		return w.repo.Mutate(ctx, c.MomentID, events.MomentUpdated, c.apply)

	case DeleteMoment:
		return nil, w.repo.Delete(ctx, c.MomentID)

	case AddTask:
		return w.repo.Mutate(ctx, c.MomentID, events.MomentUpdated, func(m *domain.Moment) error {
			_, err := m.AddTask(c.Text)
			return err
		})

	case ToggleTask:
		return w.repo.Mutate(ctx, c.MomentID, events.MomentUpdated, func(m *domain.Moment) error {
			if !m.ToggleTask(c.TaskID) {
				return ErrTaskNotFound
			}
			return nil
		})

	case LogEmotion:
		return w.repo.Mutate(ctx, c.MomentID, events.MomentUpdated, func(m *domain.Moment) error {
			_, err := m.LogEmotion(c.Emotion, c.Note, w.repo.Now())
			return err
		})

	case CompleteMoment:
		today := domain.DateOf(w.repo.Now())
		return w.repo.Mutate(ctx, c.MomentID, events.MomentCompleted, func(m *domain.Moment) error {
			return m.Complete(domain.Reflection{
				Rating:     c.Rating,
				Lessons:    strings.TrimSpace(c.Lessons),
				Repeatable: c.Repeatable,
			}, today)
		})

	case ArchiveMoment:
		return w.repo.Mutate(ctx, c.MomentID, events.MomentArchived, (*domain.Moment).Archive)

	case PostponeMoment:
		today := domain.DateOf(w.repo.Now())
		return w.repo.Mutate(ctx, c.MomentID, events.MomentPostponed, func(m *domain.Moment) error {
			return m.Postpone(today)
		})

	case SelectMoment:
		if err := w.repo.Select(c.MomentID); err != nil {
			return nil, err
		}
		if c.MomentID == uuid.Nil {
			return nil, nil
		}
		return w.repo.Get(c.MomentID)

	default:
		return nil, fmt.Errorf("%w: unknown command %T", domain.ErrValidation, cmd)
	}
}

func (c EditMoment) apply(m *domain.Moment) error {
	if c.Title != nil {
		m.Title = strings.TrimSpace(*c.Title)
	}
	if c.Date != nil {
		m.Date = *c.Date
	}
	if c.Type != nil {
		m.Type = *c.Type
	}
	if c.Priority != nil {
		m.Priority = *c.Priority
	}
	if c.Notes != nil {
		m.Notes = *c.Notes
	}
	if c.Tasks != nil {
		m.Tasks = append([]domain.Task(nil), c.Tasks...)
	}
	return nil
}
