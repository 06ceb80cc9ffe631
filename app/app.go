package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/DanielSjoholm/trainlog/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the trainlog app instance.
func Get() *cli.App {
	trainlogApp := &cli.App{
		Name: "trainlog",
		Authors: []*cli.Author{
			{
				Name: "Daniel Sjöholm",
			},
		},
		Usage: `
		Trainlog is a gym workout logger for the command-line. It times your
		training sessions, records the weight and reps for every set, and
		charts your progress per exercise over time.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "start",
				Usage:     "Start a workout session for the specified program",
				ArgsUsage: "[PROGRAM]",
				Action:    startAction,
			},
			{
				Name:  "resume",
				Usage: "Resume an interrupted workout session",
				Action: resumeAction,
			},
			{
				Name:  "history",
				Usage: "List recorded workouts, newest first",
				Flags: []cli.Flag{
					programFlag,
					periodFlag,
					startFlag,
					endFlag,
				},
				Action: historyAction,
			},
			{
				Name: "progress",
				Usage: `
				Track your progress for an exercise with a max weight chart.
				Run without arguments to list all recorded exercises`,
				ArgsUsage: "[EXERCISE]",
				Action:    progressAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a recorded workout by its position in the history list",
				ArgsUsage: "<NUMBER>",
				Action:    deleteAction,
			},
			{
				Name:   "programs",
				Usage:  "List the available workout programs",
				Action: programsAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the current workout session",
				Action: statusAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return trainlogApp
}
