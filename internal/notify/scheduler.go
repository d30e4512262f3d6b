package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/domain/analytics"
)

// Reminder is one notification the scheduler decided to show.
type Reminder struct {
	MomentID      uuid.UUID   `json:"moment_id"`
	Day           domain.Date `json:"day"`
	DaysRemaining int         `json:"days_remaining"`
	Title         string      `json:"title"`
	Body          string      `json:"body"`
}

type ledgerKey struct {
	momentID uuid.UUID
	day      string
}

// Scheduler delivers at most one reminder per (moment, calendar day) for
// active moments due today or tomorrow. It is safe for concurrent use.
type Scheduler struct {
	capability Capability
	logger     *slog.Logger

	mu        sync.Mutex
	delivered map[ledgerKey]struct{}
}

// NewScheduler creates a Scheduler delivering through capability.
// Returns an error if capability is nil.
func NewScheduler(capability Capability, logger *slog.Logger) (*Scheduler, error) {
	if capability == nil {
		return nil, fmt.Errorf("capability cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		capability: capability,
		logger:     logger.With("component", "notification_scheduler"),
		delivered:  make(map[ledgerKey]struct{}),
	}, nil
}

// Due lists the reminders that apply to moments at now, ignoring permission
// and what was already delivered.
func Due(moments []domain.Moment, now time.Time) []Reminder {
	today := domain.DateOf(now)
	var due []Reminder
	for i := range moments {
		m := &moments[i]
		if m.Status != domain.MomentStatusActive {
			continue
		}
		days := analytics.DaysRemaining(m.Date, now)
		if days != 0 && days != 1 {
			continue
		}
		title, body := message(m, days)
		due = append(due, Reminder{
			MomentID:      m.ID,
			Day:           today,
			DaysRemaining: days,
			Title:         title,
			Body:          body,
		})
	}
	return due
}

// Evaluate shows every due reminder whose key has not fired yet today and
// returns the ones delivered. Without granted permission it does nothing.
// A failed Show leaves the key unmarked so a later evaluation retries it;
// the failures are returned joined after every other reminder was tried.
func (s *Scheduler) Evaluate(ctx context.Context, moments []domain.Moment, now time.Time) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune(moments, now)

	if perm := s.capability.Permission(ctx); perm != PermissionGranted {
		s.logger.Debug("notification permission not granted, skipping", "permission", perm)
		return nil, nil
	}

	var (
		shown []Reminder
		errs  []error
	)
	for _, r := range Due(moments, now) {
		key := ledgerKey{momentID: r.MomentID, day: r.Day.String()}
		if _, done := s.delivered[key]; done {
			continue
		}
		if err := s.capability.Show(ctx, r.Title, r.Body); err != nil {
			s.logger.Warn("failed to show reminder",
				"moment_id", r.MomentID,
				"error", err)
			errs = append(errs, fmt.Errorf("reminder for %s: %w", r.MomentID, err))
			continue
		}
		s.delivered[key] = struct{}{}
		shown = append(shown, r)
	}

	if len(shown) > 0 {
		s.logger.Info("reminders delivered", "count", len(shown))
	}
	return shown, errors.Join(errs...)
}

// LedgerSize returns how many (moment, day) keys are remembered.
func (s *Scheduler) LedgerSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.delivered)
}

// prune drops keys from earlier days and keys of moments that are no longer
// active. Caller must hold s.mu.
func (s *Scheduler) prune(moments []domain.Moment, now time.Time) {
	today := domain.DateOf(now).String()
	active := make(map[uuid.UUID]struct{}, len(moments))
	for i := range moments {
		if moments[i].Status == domain.MomentStatusActive {
			active[moments[i].ID] = struct{}{}
		}
	}
	for key := range s.delivered {
		_, stillActive := active[key.momentID]
		if key.day != today || !stillActive {
			delete(s.delivered, key)
		}
	}
}

func message(m *domain.Moment, days int) (string, string) {
	when := "today"
	if days == 1 {
		when = "tomorrow"
	}
	title := fmt.Sprintf("%s %s", m.Type.Attributes().Icon, m.Title)
	body := fmt.Sprintf("%s is due %s.", m.Title, when)
	if n := len(m.Tasks); n > 0 {
		done := 0
		for _, task := range m.Tasks {
			if task.Completed {
				done++
			}
		}
		body += fmt.Sprintf(" %d of %d tasks done.", done, n)
	}
	return title, body
}
