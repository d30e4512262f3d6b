package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/events"
	"github.com/phrazzld/moments-api/internal/notify"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/task"
)

// SweepJobName names the periodic reminder evaluation job.
const SweepJobName = "reminder_sweep"

// Snapshotter provides deep copies of the moment collection.
type Snapshotter interface {
	Snapshot() []domain.Moment
}

// ReminderService re-evaluates the notification scheduler after every
// committed change and on a periodic sweep.
type ReminderService struct {
	moments    Snapshotter
	scheduler  *notify.Scheduler
	capability notify.Capability
	emitter    events.EventEmitter
	now        func() time.Time
	logger     *slog.Logger
}

// NewReminderService creates a ReminderService. Register it as an event
// handler on the emitter the repository and settings service use.
func NewReminderService(
	moments Snapshotter,
	capability notify.Capability,
	emitter events.EventEmitter,
	now func() time.Time,
	log *slog.Logger,
) (*ReminderService, error) {
	if moments == nil {
		return nil, domain.NewValidationError("moments", "cannot be nil", domain.ErrValidation)
	}
	if capability == nil {
		return nil, domain.NewValidationError("capability", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}

	scheduler, err := notify.NewScheduler(capability, log)
	if err != nil {
		return nil, err
	}

	return &ReminderService{
		moments:    moments,
		scheduler:  scheduler,
		capability: capability,
		emitter:    emitter,
		now:        now,
		logger:     log.With("component", "reminder_service"),
	}, nil
}

// HandleEvent implements events.EventHandler.
func (s *ReminderService) HandleEvent(ctx context.Context, event *events.Event) error {
	switch {
	case event.IsMomentEvent(),
		event.Type == events.SettingsChanged,
		event.Type == events.PermissionChanged:
		_, err := s.Evaluate(ctx)
		return err
	default:
		return nil
	}
}

// Evaluate runs the scheduler over a fresh snapshot and returns the
// reminders delivered.
func (s *ReminderService) Evaluate(ctx context.Context) ([]notify.Reminder, error) {
	return s.scheduler.Evaluate(ctx, s.moments.Snapshot(), s.now())
}

// Permission returns the capability's current permission.
func (s *ReminderService) Permission(ctx context.Context) notify.Permission {
	return s.capability.Permission(ctx)
}

// RequestPermission asks the capability for permission. A change emits
// PermissionChanged, which triggers an evaluation.
func (s *ReminderService) RequestPermission(ctx context.Context) (notify.Permission, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	before := s.capability.Permission(ctx)
	after, err := s.capability.RequestPermission(ctx)
	if err != nil {
		return before, err
	}
	if after != before {
		log.Info("notification permission changed", "from", before, "to", after)
		if err := s.emitter.EmitEvent(ctx, events.NewEvent(events.PermissionChanged, uuid.Nil, s.now())); err != nil {
			log.Warn("permission event handler failed", "error", err)
		}
	}
	return after, nil
}

// SweepJob returns a job that evaluates the scheduler, for use with
// task.Runner.
func (s *ReminderService) SweepJob() task.Job {
	return task.NewJob(SweepJobName, func(ctx context.Context) error {
		_, err := s.Evaluate(ctx)
		return err
	})
}
