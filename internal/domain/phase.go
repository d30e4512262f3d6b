package domain

import "time"

// Phase is the lifecycle view of a moment. Exactly one of ActivePhase,
// CompletedPhase or ArchivedPhase is returned by Moment.Phase, so a
// reflection is only reachable from a completed moment.
type Phase interface {
	Status() MomentStatus
	isPhase()
}

// ActivePhase is an active moment together with the days left until its date.
type ActivePhase struct {
	DaysRemaining int
}

// Status implements Phase.
func (ActivePhase) Status() MomentStatus { return MomentStatusActive }

// PastDue reports whether the date has passed while the moment is still active.
func (p ActivePhase) PastDue() bool { return p.DaysRemaining < 0 }

func (ActivePhase) isPhase() {}

// CompletedPhase carries the reflection attached at completion.
type CompletedPhase struct {
	Reflection Reflection
}

// Status implements Phase.
func (CompletedPhase) Status() MomentStatus { return MomentStatusCompleted }

func (CompletedPhase) isPhase() {}

// ArchivedPhase is a moment retired without a reflection.
type ArchivedPhase struct{}

// Status implements Phase.
func (ArchivedPhase) Status() MomentStatus { return MomentStatusArchived }

func (ArchivedPhase) isPhase() {}

// DaysBetween returns the whole calendar days from the day of now to date,
// using now's location to decide which day "today" is.
func DaysBetween(date Date, now time.Time) int {
	return DateOf(now).DaysUntil(date)
}

// Phase derives the lifecycle view of m at the given instant.
func (m *Moment) Phase(now time.Time) Phase {
	switch m.Status {
	case MomentStatusCompleted:
		if m.Reflection != nil {
			return CompletedPhase{Reflection: *m.Reflection}
		}
		return CompletedPhase{}
	case MomentStatusArchived:
		return ArchivedPhase{}
	default:
		return ActivePhase{DaysRemaining: DaysBetween(m.Date, now)}
	}
}
