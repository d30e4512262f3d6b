package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(app *cliApp) *cobra.Command {
	root := &cobra.Command{
		Use:           "moments",
		Short:         "Track moments, their tasks and how you feel about them",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}
	root.SetOut(app.out)
	root.SetErr(app.errOut)

	root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "log at the configured level instead of warn")

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newEditCmd(app),
		newTaskCmd(app),
		newFeelCmd(app),
		newDoneCmd(app),
		newArchiveCmd(app),
		newPostponeCmd(app),
		newRemoveCmd(app),
		newStatsCmd(app),
		newRemindCmd(app),
		newSettingsCmd(app),
		newExportCmd(app),
	)
	return root
}
