package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newStatsCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show schedule pressure and completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderSummary(app.out, app.dashboard.Summary())
			return nil
		},
	}
}

func newRemindCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Print reminders for moments due today or tomorrow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shown, err := app.reminders.Evaluate(cmd.Context())
			if err != nil {
				return err
			}
			if len(shown) == 0 {
				fmt.Fprintln(app.out, "No reminders due.")
			}
			return nil
		},
	}
}

func newSettingsCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.settings.Get()
			t := newTable(app.out)
			t.AppendRow(table.Row{"Theme", s.Theme})
			t.AppendRow(table.Row{"Language", fmt.Sprintf("%s (%s)", s.Language, languageName(s.Language))})
			t.Render()
			return nil
		},
	})

	var theme, language string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the theme or the language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.settings.Get()
			if cmd.Flags().Changed("theme") {
				s.Theme = domain.Theme(theme)
			}
			if cmd.Flags().Changed("language") {
				s.Language = language
			}
			saved, err := app.settings.Update(cmd.Context(), s)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "✅ Settings saved: theme=%s language=%s\n", saved.Theme, saved.Language)
			return nil
		},
	}
	set.Flags().StringVar(&theme, "theme", "", "light, dark or system")
	set.Flags().StringVar(&language, "language", "", "BCP 47 language tag, e.g. en or pt-BR")
	cmd.AddCommand(set)
	return cmd
}

// exportDocument is the shape written by the export command.
type exportDocument struct {
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Settings   domain.Settings `json:"settings"    yaml:"settings"`
	Moments    []domain.Moment `json:"moments"     yaml:"moments"`
}

func newExportCmd(app *cliApp) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every moment and the settings as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := exportDocument{
				ExportedAt: app.now().UTC(),
				Settings:   app.settings.Get(),
				Moments:    app.repo.Snapshot(),
			}

			var w io.Writer = app.out
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := writeExport(w, format, doc); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(app.out, "✅ Exported %d moments to %s\n", len(doc.Moments), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func languageName(tag string) string {
	parsed, err := domain.ParseLanguage(tag)
	if err != nil {
		return tag
	}
	return domain.LanguageName(parsed)
}
