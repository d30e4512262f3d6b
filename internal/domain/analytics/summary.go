package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
)

// MomentStats are the derived values for one active moment.
type MomentStats struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	Date          domain.Date `json:"date"`
	DaysRemaining int         `json:"days_remaining"`
	PastDue       bool        `json:"past_due"`
	Urgency       Urgency     `json:"urgency"`
	TaskRatio     float64     `json:"task_ratio"`
}

// Summary bundles every derived view of a snapshot.
type Summary struct {
	GeneratedAt    time.Time       `json:"generated_at"`
	ActiveCount    int             `json:"active_count"`
	CompletedCount int             `json:"completed_count"`
	ArchivedCount  int             `json:"archived_count"`
	UrgentCount    int             `json:"urgent_count"`
	StressScore    int             `json:"stress_score"`
	Vibe           Vibe            `json:"vibe"`
	AverageRating  float64         `json:"average_rating"`
	Active         []MomentStats   `json:"active"`
	Categories     []CategoryCount `json:"categories"`
	Timeline       []TimelinePoint `json:"timeline"`
}

// Summarize computes a Summary over moments at now. Active moments are listed
// in the order they appear in moments.
func Summarize(moments []domain.Moment, now time.Time) Summary {
	s := Summary{
		GeneratedAt: now,
		Active:      []MomentStats{},
	}

	ratingSum, rated := 0, 0
	for i := range moments {
		m := moments[i]
		switch m.Status {
		case domain.MomentStatusActive:
			s.ActiveCount++
			days := DaysRemaining(m.Date, now)
			urgency := Classify(m, now)
			if urgency != UrgencyCalm {
				s.UrgentCount++
			}
			s.Active = append(s.Active, MomentStats{
				ID:            m.ID,
				Title:         m.Title,
				Date:          m.Date,
				DaysRemaining: days,
				PastDue:       days < 0,
				Urgency:       urgency,
				TaskRatio:     TaskCompletionRatio(m),
			})
		case domain.MomentStatusCompleted:
			s.CompletedCount++
			if m.Reflection != nil {
				ratingSum += m.Reflection.Rating
				rated++
			}
		case domain.MomentStatusArchived:
			s.ArchivedCount++
		}
	}

	if rated > 0 {
		s.AverageRating = float64(ratingSum) / float64(rated)
	}
	s.StressScore = StressScore(moments, now)
	s.Vibe = VibeFor(s.StressScore)
	s.Categories = CategoryDistribution(moments)
	s.Timeline = EmotionTimeline(moments)
	if s.Timeline == nil {
		s.Timeline = []TimelinePoint{}
	}
	return s
}
