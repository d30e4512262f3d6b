package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/domain/analytics"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false
	return t
}

func header(cols ...string) table.Row {
	row := make(table.Row, 0, len(cols))
	for _, c := range cols {
		row = append(row, text.FgGreen.Sprint(c))
	}
	return row
}

func renderMomentList(w io.Writer, moments []domain.Moment, now time.Time) {
	t := newTable(w)
	t.AppendHeader(header("ID", "Title", "Date", "Due", "Priority", "Tasks", "Status"))

	for i := range moments {
		m := moments[i]
		t.AppendRow(table.Row{
			shortID(m.ID),
			fmt.Sprintf("%s %s", m.Type.Attributes().Icon, m.Title),
			m.Date.String(),
			dueLabel(m, now),
			priorityLabel(m.Priority),
			taskProgress(m),
			statusLabel(m.Status),
		})
	}
	t.Render()
}

func renderMoment(w io.Writer, m *domain.Moment, now time.Time) {
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("%s %s", m.Type.Attributes().Icon, m.Title))
	t.AppendRows([]table.Row{
		{"ID", m.ID.String()},
		{"Date", m.Date.String()},
		{"Due", dueLabel(*m, now)},
		{"Type", m.Type.Attributes().Label},
		{"Priority", priorityLabel(m.Priority)},
		{"Status", statusLabel(m.Status)},
		{"Created", m.CreatedAt.Local().Format("2006-01-02 15:04")},
	})
	if m.Notes != "" {
		t.AppendRow(table.Row{"Notes", m.Notes})
	}
	if r := m.Reflection; r != nil {
		t.AppendRow(table.Row{"Rating", stars(r.Rating)})
		t.AppendRow(table.Row{"Completed", r.CompletedDate.String()})
		if r.Lessons != "" {
			t.AppendRow(table.Row{"Lessons", r.Lessons})
		}
		t.AppendRow(table.Row{"Repeatable", yesNo(r.Repeatable)})
	}
	t.Render()

	if len(m.Tasks) > 0 {
		tasks := newTable(w)
		tasks.SetTitle("Tasks " + taskProgress(*m))
		tasks.AppendHeader(header("#", "Done", "Task"))
		for i, task := range m.Tasks {
			tasks.AppendRow(table.Row{i + 1, checkbox(task.Completed), task.Text})
		}
		tasks.Render()
	}

	checkins := newTable(w)
	checkins.SetTitle("Check-ins")
	checkins.AppendHeader(header("When", "Feeling", "Note"))
	for _, entry := range m.EmotionHistory {
		attrs := entry.Emotion.Attributes()
		checkins.AppendRow(table.Row{
			entry.Date.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%s %s", attrs.Icon, attrs.Label),
			entry.Note,
		})
	}
	checkins.Render()
}

func renderSummary(w io.Writer, s analytics.Summary) {
	t := newTable(w)
	t.SetTitle("Overview")
	t.AppendRows([]table.Row{
		{"Active", s.ActiveCount},
		{"Urgent", s.UrgentCount},
		{"Completed", s.CompletedCount},
		{"Archived", s.ArchivedCount},
		{"Stress score", s.StressScore},
		{"Vibe", vibeLabel(s.Vibe)},
	})
	if s.CompletedCount > 0 {
		t.AppendRow(table.Row{"Average rating", fmt.Sprintf("%.1f", s.AverageRating)})
	}
	t.Render()

	if len(s.Categories) > 0 {
		cats := newTable(w)
		cats.SetTitle("Finished by type")
		cats.AppendHeader(header("Type", "Count"))
		for _, c := range s.Categories {
			cats.AppendRow(table.Row{c.Label, c.Count})
		}
		cats.Render()
	}
}

func dueLabel(m domain.Moment, now time.Time) string {
	phase, ok := m.Phase(now).(domain.ActivePhase)
	if !ok {
		return "-"
	}

	var label string
	switch days := phase.DaysRemaining; {
	case days < 0:
		return text.FgHiRed.Sprintf("%d days overdue", -days)
	case days == 0:
		label = "today"
	case days == 1:
		label = "tomorrow"
	default:
		label = fmt.Sprintf("in %d days", days)
	}

	switch analytics.Classify(m, now) {
	case analytics.UrgencyVeryUrgent:
		return text.FgHiRed.Sprint(label)
	case analytics.UrgencyUrgent:
		return text.FgHiYellow.Sprint(label)
	default:
		return label
	}
}

func priorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return text.FgHiMagenta.Sprint(string(p))
	case domain.PriorityLow:
		return text.FgHiBlack.Sprint(string(p))
	default:
		return string(p)
	}
}

func statusLabel(s domain.MomentStatus) string {
	switch s {
	case domain.MomentStatusCompleted:
		return text.FgHiGreen.Sprint(string(s))
	case domain.MomentStatusArchived:
		return text.FgHiBlack.Sprint(string(s))
	default:
		return text.FgHiBlue.Sprint(string(s))
	}
}

func vibeLabel(v analytics.Vibe) string {
	switch v {
	case analytics.VibeChill:
		return "😎 chill"
	case analytics.VibeBalanced:
		return "⚖️ balanced"
	default:
		return "🔥 hectic"
	}
}

func taskProgress(m domain.Moment) string {
	if len(m.Tasks) == 0 {
		return "-"
	}
	done := 0
	for _, task := range m.Tasks {
		if task.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(m.Tasks))
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func stars(rating int) string {
	if rating < 1 || rating > 5 {
		return "-"
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
