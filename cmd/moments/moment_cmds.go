package main

import (
	"fmt"
	"strings"

	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/service"
	"github.com/spf13/cobra"
)

func newAddCmd(app *cliApp) *cobra.Command {
	var (
		date     string
		kind     string
		priority string
		notes    string
		tasks    []string
		emotion  string
	)

	cmd := &cobra.Command{
		Use:     "add [title]",
		Short:   "Add a new moment",
		Args:    cobra.MinimumNArgs(1),
		Aliases: []string{"a"},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.ParseDate(date)
			if err != nil {
				return err
			}
			m, err := app.dispatch(cmd.Context(), service.CreateMoment{Input: domain.MomentInput{
				Title:          strings.Join(args, " "),
				Date:           d,
				Type:           domain.MomentType(kind),
				Priority:       domain.Priority(priority),
				Notes:          notes,
				Tasks:          tasks,
				InitialEmotion: domain.Emotion(emotion),
			}})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "✅ Moment %s created: %s\n", shortID(m.ID), m.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "target date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&kind, "type", "t", "", "study, work, personal, travel or goal")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	cmd.Flags().StringArrayVar(&tasks, "task", nil, "add a subtask (repeatable)")
	cmd.Flags().StringVarP(&emotion, "emotion", "e", "", "how you feel about it right now")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newListCmd(app *cliApp) *cobra.Command {
	var history, all bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List active moments, soonest first",
		Args:    cobra.NoArgs,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var moments []domain.Moment
			switch {
			case all:
				moments = app.repo.Snapshot()
			case history:
				moments = app.repo.QueryHistory()
			default:
				moments = app.repo.QueryActive()
			}
			if len(moments) == 0 {
				fmt.Fprintln(app.out, "No moments to display.")
				return nil
			}
			renderMomentList(app.out, moments, app.now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "show completed and archived moments")
	cmd.Flags().BoolVar(&all, "all", false, "show every moment in stored order")
	return cmd
}

func newShowCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one moment with its tasks and check-ins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}
			m, err := app.repo.Get(id)
			if err != nil {
				return err
			}
			renderMoment(app.out, m, app.now())
			return nil
		},
	}
}

func newEditCmd(app *cliApp) *cobra.Command {
	var (
		title    string
		date     string
		kind     string
		priority string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change the title, date, type, priority or notes of a moment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}
			edit := service.EditMoment{MomentID: id}
			flags := cmd.Flags()
			if flags.Changed("title") {
				edit.Title = &title
			}
			if flags.Changed("date") {
				d, err := domain.ParseDate(date)
				if err != nil {
					return err
				}
				edit.Date = &d
			}
			if flags.Changed("type") {
				t := domain.MomentType(kind)
				edit.Type = &t
			}
			if flags.Changed("priority") {
				p := domain.Priority(priority)
				edit.Priority = &p
			}
			if flags.Changed("notes") {
				edit.Notes = &notes
			}

			m, err := app.dispatch(cmd.Context(), edit)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "✅ Moment %s updated.\n", shortID(m.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new target date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&kind, "type", "t", "", "new type")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "new notes")
	return cmd
}

func newTaskCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Short:   "Manage the subtasks of a moment",
		Aliases: []string{"t"},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [id] [text]",
		Short: "Add a subtask",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}
			m, err := app.dispatch(cmd.Context(), service.AddTask{MomentID: id, Text: strings.Join(args[1:], " ")})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "✅ Task #%d added to %s.\n", len(m.Tasks), m.Title)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle [id] [task number or id]",
		Short: "Mark a subtask done or not done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}
			current, err := app.repo.Get(id)
			if err != nil {
				return err
			}
			taskID, err := resolveTask(current, args[1])
			if err != nil {
				return err
			}
			m, err := app.dispatch(cmd.Context(), service.ToggleTask{MomentID: id, TaskID: taskID})
			if err != nil {
				return err
			}
			for _, task := range m.Tasks {
				if task.ID == taskID {
					fmt.Fprintf(app.out, "%s %s\n", checkbox(task.Completed), task.Text)
				}
			}
			return nil
		},
	})
	return cmd
}

func newFeelCmd(app *cliApp) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "feel [id] [emotion]",
		Short: "Record how you feel about a moment",
		Long:  "Record an emotional check-in. Emotions: " + emotionList(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}
			emotion := domain.Emotion(strings.ToLower(args[1]))
			if _, err := app.dispatch(cmd.Context(), service.LogEmotion{MomentID: id, Emotion: emotion, Note: note}); err != nil {
				return err
			}
			attrs := emotion.Attributes()
			fmt.Fprintf(app.out, "%s Feeling %s noted.\n", attrs.Icon, strings.ToLower(attrs.Label))
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note")
	return cmd
}

func newDoneCmd(app *cliApp) *cobra.Command {
	var (
		rating     int
		lessons    string
		repeatable bool
	)

	cmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Complete a moment with a reflection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}
			m, err := app.dispatch(cmd.Context(), service.CompleteMoment{
				MomentID:   id,
				Rating:     rating,
				Lessons:    lessons,
				Repeatable: repeatable,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "🎉 %s completed (%s).\n", m.Title, stars(rating))
			return nil
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "how it went, 1 to 5")
	cmd.Flags().StringVarP(&lessons, "lessons", "l", "", "what you learned")
	cmd.Flags().BoolVar(&repeatable, "repeatable", false, "worth doing again")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func newArchiveCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "archive [id]",
		Short: "Retire an active moment without a reflection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}
			m, err := app.dispatch(cmd.Context(), service.ArchiveMoment{MomentID: id})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "📦 %s archived.\n", m.Title)
			return nil
		},
	}
}

func newPostponeCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "postpone [id]",
		Short: fmt.Sprintf("Push a past-due moment forward by %d days", domain.PostponeDays),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}
			m, err := app.dispatch(cmd.Context(), service.PostponeMoment{MomentID: id})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "⏩ %s moved to %s.\n", m.Title, m.Date)
			return nil
		},
	}
}

func newRemoveCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Short:   "Delete a moment permanently",
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"delete"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.resolveID(args[0])
			if err != nil {
				return err
			}
			if _, err := app.dispatch(cmd.Context(), service.DeleteMoment{MomentID: id}); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "🗑️ Moment %s deleted.\n", shortID(id))
			return nil
		},
	}
}

func emotionList() string {
	names := make([]string, 0, len(domain.AllEmotions()))
	for _, e := range domain.AllEmotions() {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}
