// Package analytics derives schedule pressure, mood trends and category
// aggregates from snapshots of the moment collection. Every function is pure.
package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
)

// Urgency classifies how close an active moment is to its date.
type Urgency string

// Urgency levels
const (
	UrgencyCalm       Urgency = "calm"
	UrgencyUrgent     Urgency = "urgent"
	UrgencyVeryUrgent Urgency = "very_urgent"
)

// Vibe is the overall schedule pressure derived from the stress score.
type Vibe string

// Vibe values
const (
	VibeChill    Vibe = "chill"
	VibeBalanced Vibe = "balanced"
	VibeHectic   Vibe = "hectic"
)

// Thresholds used by Classify and VibeFor.
const (
	VeryUrgentDays = 1
	UrgentDays     = 7
	ChillMax       = 5
	BalancedMax    = 10
)

// DaysRemaining returns the calendar days from the day of now to date.
// Negative values mean the date has passed.
func DaysRemaining(date domain.Date, now time.Time) int {
	return domain.DaysBetween(date, now)
}

// Classify returns the urgency of m at now. Very urgent applies to any
// priority; urgent only to high priority moments.
func Classify(m domain.Moment, now time.Time) Urgency {
	days := DaysRemaining(m.Date, now)
	switch {
	case days <= VeryUrgentDays:
		return UrgencyVeryUrgent
	case m.Priority == domain.PriorityHigh && days <= UrgentDays:
		return UrgencyUrgent
	default:
		return UrgencyCalm
	}
}

// StressScore is 2 × urgentCount + activeCount over the active moments, where
// a moment is counted as urgent when it is urgent or very urgent.
func StressScore(moments []domain.Moment, now time.Time) int {
	active, urgent := 0, 0
	for i := range moments {
		if moments[i].Status != domain.MomentStatusActive {
			continue
		}
		active++
		if Classify(moments[i], now) != UrgencyCalm {
			urgent++
		}
	}
	return 2*urgent + active
}

// VibeFor maps a stress score to a vibe.
func VibeFor(score int) Vibe {
	switch {
	case score <= ChillMax:
		return VibeChill
	case score <= BalancedMax:
		return VibeBalanced
	default:
		return VibeHectic
	}
}

// TaskCompletionRatio is completed/total, or 0 for a moment without tasks.
func TaskCompletionRatio(m domain.Moment) float64 {
	if len(m.Tasks) == 0 {
		return 0
	}
	done := 0
	for _, task := range m.Tasks {
		if task.Completed {
			done++
		}
	}
	return float64(done) / float64(len(m.Tasks))
}

// CategoryCount is the number of finished moments of one type.
type CategoryCount struct {
	Type  domain.MomentType `json:"type"`
	Label string            `json:"label"`
	Count int               `json:"count"`
}

// CategoryDistribution counts completed and archived moments per type,
// omitting empty groups. Groups follow the order of domain.AllMomentTypes.
func CategoryDistribution(moments []domain.Moment) []CategoryCount {
	counts := make(map[domain.MomentType]int)
	for i := range moments {
		if moments[i].IsHistory() {
			counts[moments[i].Type]++
		}
	}

	out := make([]CategoryCount, 0, len(counts))
	for _, mt := range domain.AllMomentTypes() {
		if n := counts[mt]; n > 0 {
			out = append(out, CategoryCount{Type: mt, Label: mt.Attributes().Label, Count: n})
		}
	}
	return out
}

// EmotionScore maps an emotion to 5 (happy, excited), 1 (worried, stressed)
// or 3 for everything else.
func EmotionScore(e domain.Emotion) int {
	switch e {
	case domain.EmotionHappy, domain.EmotionExcited:
		return 5
	case domain.EmotionWorried, domain.EmotionStressed:
		return 1
	default:
		return 3
	}
}

// TimelinePoint is one emotion check-in mapped to its score.
type TimelinePoint struct {
	At       time.Time      `json:"at"`
	Score    int            `json:"score"`
	Emotion  domain.Emotion `json:"emotion"`
	MomentID uuid.UUID      `json:"moment_id"`
}

// EmotionTimeline flattens every emotion log across moments and sorts the
// points ascending by timestamp. Entries with equal timestamps keep their
// collection order.
func EmotionTimeline(moments []domain.Moment) []TimelinePoint {
	var points []TimelinePoint
	for i := range moments {
		for _, entry := range moments[i].EmotionHistory {
			points = append(points, TimelinePoint{
				At:       entry.Date,
				Score:    EmotionScore(entry.Emotion),
				Emotion:  entry.Emotion,
				MomentID: moments[i].ID,
			})
		}
	}
	sort.SliceStable(points, func(a, b int) bool {
		return points[a].At.Before(points[b].At)
	})
	return points
}
