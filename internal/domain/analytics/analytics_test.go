package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.April, 14, 18, 45, 0, 0, time.UTC)

func today() domain.Date { return domain.DateOf(now) }

func newMoment(t *testing.T, title string, daysAhead int, priority domain.Priority) domain.Moment {
	t.Helper()
	m, err := domain.NewMoment(domain.MomentInput{
		Title:    title,
		Date:     today().AddDays(daysAhead),
		Type:     domain.MomentTypeStudy,
		Priority: priority,
	}, now)
	require.NoError(t, err)
	return *m
}

func TestDaysRemaining(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, DaysRemaining(today(), now))
	assert.Equal(t, 10, DaysRemaining(today().AddDays(10), now))
	assert.Equal(t, -3, DaysRemaining(today().AddDays(-3), now))

	// Late evening in UTC is already the next day further east.
	east := now.In(time.FixedZone("UTC+8", 8*60*60))
	assert.Equal(t, 9, DaysRemaining(today().AddDays(10), east))

	far := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 173125, DaysRemaining(domain.NewDate(2500, time.January, 1), far))
	assert.Equal(t, -173125, DaysRemaining(domain.NewDate(2026, time.January, 1), time.Date(2500, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDaysRemainingAntisymmetry(t *testing.T) {
	t.Parallel()

	for offset := -40; offset <= 40; offset += 7 {
		d := today().AddDays(offset)
		forward := DaysRemaining(d, now)
		backward := DaysRemaining(today(), d.Midnight(time.UTC))
		assert.Equal(t, -forward, backward)
	}
	assert.Equal(t, 0, DaysRemaining(today(), now))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		days     int
		priority domain.Priority
		want     Urgency
	}{
		{"past due low", -2, domain.PriorityLow, UrgencyVeryUrgent},
		{"today low", 0, domain.PriorityLow, UrgencyVeryUrgent},
		{"tomorrow medium", 1, domain.PriorityMedium, UrgencyVeryUrgent},
		{"two days high", 2, domain.PriorityHigh, UrgencyUrgent},
		{"seven days high", 7, domain.PriorityHigh, UrgencyUrgent},
		{"eight days high", 8, domain.PriorityHigh, UrgencyCalm},
		{"two days medium", 2, domain.PriorityMedium, UrgencyCalm},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newMoment(t, tc.name, tc.days, tc.priority)
			assert.Equal(t, tc.want, Classify(m, now))
		})
	}
}

func TestStressScoreScenarios(t *testing.T) {
	t.Parallel()

	base := []domain.Moment{newMoment(t, "Laundry", 30, domain.PriorityLow)}
	before := StressScore(base, now)
	assert.Equal(t, 1, before)

	exam := newMoment(t, "Exam", 10, domain.PriorityHigh)
	withExam := append(append([]domain.Moment{}, base...), exam)
	assert.Equal(t, before+1, StressScore(withExam, now))

	edited := exam
	edited.Date = today().AddDays(5)
	withEdited := append(append([]domain.Moment{}, base...), edited)
	assert.Equal(t, StressScore(withExam, now)+2, StressScore(withEdited, now))

	done := newMoment(t, "Old", 1, domain.PriorityHigh)
	require.NoError(t, done.Archive())
	assert.Equal(t, StressScore(withEdited, now), StressScore(append(withEdited, done), now))
}

func TestStressScoreMonotonic(t *testing.T) {
	t.Parallel()

	var moments []domain.Moment
	prev := StressScore(moments, now)
	for i, days := range []int{20, 3, -1, 0, 12, 6} {
		priority := domain.PriorityLow
		if i%2 == 0 {
			priority = domain.PriorityHigh
		}
		moments = append(moments, newMoment(t, "m", days, priority))
		score := StressScore(moments, now)
		assert.GreaterOrEqual(t, score, prev+1)
		prev = score
	}
}

func TestVibeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, VibeChill, VibeFor(0))
	assert.Equal(t, VibeChill, VibeFor(5))
	assert.Equal(t, VibeBalanced, VibeFor(6))
	assert.Equal(t, VibeBalanced, VibeFor(10))
	assert.Equal(t, VibeHectic, VibeFor(11))
}

func TestTaskCompletionRatio(t *testing.T) {
	t.Parallel()

	m := newMoment(t, "Trip", 5, domain.PriorityLow)
	assert.Zero(t, TaskCompletionRatio(m))

	for _, text := range []string{"a", "b", "c", "d"} {
		_, err := m.AddTask(text)
		require.NoError(t, err)
	}
	m.ToggleTask(m.Tasks[0].ID)
	assert.InDelta(t, 0.25, TaskCompletionRatio(m), 1e-9)
}

func TestCategoryDistribution(t *testing.T) {
	t.Parallel()

	mk := func(mt domain.MomentType, finish func(*domain.Moment) error) domain.Moment {
		m := newMoment(t, string(mt), 3, domain.PriorityLow)
		m.Type = mt
		if finish != nil {
			require.NoError(t, finish(&m))
		}
		return m
	}
	complete := func(m *domain.Moment) error {
		return m.Complete(domain.Reflection{Rating: 4}, today())
	}
	archive := func(m *domain.Moment) error { return m.Archive() }

	moments := []domain.Moment{
		mk(domain.MomentTypeTravel, complete),
		mk(domain.MomentTypeStudy, archive),
		mk(domain.MomentTypeTravel, archive),
		mk(domain.MomentTypeWork, nil),
	}

	got := CategoryDistribution(moments)
	require.Len(t, got, 2)
	assert.Equal(t, domain.MomentTypeStudy, got[0].Type)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, domain.MomentTypeTravel, got[1].Type)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, "Travel", got[1].Label)
}

func TestEmotionScore(t *testing.T) {
	t.Parallel()

	for _, e := range domain.AllEmotions() {
		assert.Equal(t, e.Attributes().Score, EmotionScore(e), string(e))
	}
	assert.Equal(t, 3, EmotionScore("unknown"))
}

func TestEmotionTimelineSortsOutOfOrderLogs(t *testing.T) {
	t.Parallel()

	m := newMoment(t, "Talk", 4, domain.PriorityMedium)
	m.EmotionHistory = []domain.EmotionLog{
		{ID: uuid.New(), Date: now.Add(2 * time.Hour), Emotion: domain.EmotionHappy},
		{ID: uuid.New(), Date: now.Add(-time.Hour), Emotion: domain.EmotionStressed},
	}
	other := newMoment(t, "Gym", 2, domain.PriorityLow)
	other.EmotionHistory[0].Date = now.Add(time.Hour)

	points := EmotionTimeline([]domain.Moment{m, other})
	require.Len(t, points, 3)
	assert.Equal(t, 1, points[0].Score)
	assert.Equal(t, 3, points[1].Score)
	assert.Equal(t, other.ID, points[1].MomentID)
	assert.Equal(t, 5, points[2].Score)
	for i := 1; i < len(points); i++ {
		assert.False(t, points[i].At.Before(points[i-1].At))
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	urgent := newMoment(t, "Deadline", 1, domain.PriorityHigh)
	calm := newMoment(t, "Holiday", 40, domain.PriorityLow)
	done := newMoment(t, "Finished", -5, domain.PriorityLow)
	require.NoError(t, done.Complete(domain.Reflection{Rating: 4}, today()))
	archived := newMoment(t, "Dropped", 2, domain.PriorityLow)
	require.NoError(t, archived.Archive())

	s := Summarize([]domain.Moment{urgent, calm, done, archived}, now)

	assert.Equal(t, 2, s.ActiveCount)
	assert.Equal(t, 1, s.CompletedCount)
	assert.Equal(t, 1, s.ArchivedCount)
	assert.Equal(t, 1, s.UrgentCount)
	assert.Equal(t, 4, s.StressScore)
	assert.Equal(t, VibeChill, s.Vibe)
	assert.InDelta(t, 4.0, s.AverageRating, 1e-9)
	require.Len(t, s.Active, 2)
	assert.Equal(t, UrgencyVeryUrgent, s.Active[0].Urgency)
	assert.Equal(t, 40, s.Active[1].DaysRemaining)
	require.Len(t, s.Categories, 1)
	assert.Len(t, s.Timeline, 4)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil, now)
	assert.Equal(t, VibeChill, s.Vibe)
	assert.NotNil(t, s.Active)
	assert.NotNil(t, s.Timeline)
	assert.Empty(t, s.Categories)
}
