// Package app wires the timespan commands to their actions.
package app

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timespan/internal/config"
)

const (
	envNoColor         = "NO_COLOR"
	envTimespanNoColor = "TIMESPAN_NO_COLOR"
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

func beforeAction(_ *cli.Context) error {
	if _, ok := os.LookupEnv(envNoColor); ok {
		disableStyling()
	}

	if _, ok := os.LookupEnv(envTimespanNoColor); ok {
		disableStyling()
	}

	config.InitializePaths()
	config.InitLog()

	return nil
}

// Get retrieves the timespan app instance.
func Get() *cli.App {
	return &cli.App{
		Name:                 "timespan",
		Usage:                "A local, single-user work-time ledger. Track time against projects manually or infer it from git history.",
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Before:               beforeAction,
		Commands: []*cli.Command{
			{
				Name:      "start",
				Usage:     "Start tracking time against a project",
				ArgsUsage: "<project>",
				Flags:     []cli.Flag{taskFlag},
				Action:    startAction,
			},
			{
				Name:   "stop",
				Usage:  "Stop the running timer and record a time entry",
				Action: stopAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the timer",
				Action: statusAction,
			},
			{
				Name:      "tag",
				Usage:     "Add tags to the running timer",
				ArgsUsage: "<tag>...",
				Action:    tagAction,
			},
			{
				Name:  "entry",
				Usage: "Manage recorded time entries",
				Subcommands: []*cli.Command{
					{
						Name:      "tag",
						Usage:     "Add tags to the most recently recorded time entry",
						ArgsUsage: "<tag>...",
						Action:    entryTagAction,
					},
				},
			},
			{
				Name:  "project",
				Usage: "Manage projects",
				Subcommands: []*cli.Command{
					{
						Name:      "create",
						Usage:     "Create a new project",
						ArgsUsage: "<name>",
						Flags:     []cli.Flag{descriptionFlag},
						Action:    projectCreateAction,
					},
					{
						Name:   "list",
						Usage:  "List all projects ordered by name",
						Action: projectListAction,
					},
					{
						Name:      "edit",
						Usage:     "Update a project's description",
						ArgsUsage: "<name>",
						Flags:     []cli.Flag{descriptionFlag},
						Action:    projectEditAction,
					},
					{
						Name:      "delete",
						Usage:     "Delete a project with no recorded time entries",
						ArgsUsage: "<name>",
						Action:    projectDeleteAction,
					},
					{
						Name:  "discover",
						Usage: "Register client projects for git repositories found under a base directory",
						Flags: []cli.Flag{
							discoverPathFlag,
							discoverPrefixFlag,
							dryRunFlag,
						},
						Action: projectDiscoverAction,
					},
				},
			},
			{
				Name:  "report",
				Usage: "Summarise recorded time",
				Subcommands: []*cli.Command{
					{
						Name:   "daily",
						Usage:  "Report entries for a single day",
						Flags:  []cli.Flag{dateFlag, jsonFlag},
						Action: reportDailyAction,
					},
					{
						Name:   "weekly",
						Usage:  "Report entries for a week",
						Flags:  []cli.Flag{dateFlag, jsonFlag},
						Action: reportWeeklyAction,
					},
					{
						Name:      "project",
						Usage:     "Report all entries for one project",
						ArgsUsage: "<name>",
						Flags:     []cli.Flag{jsonFlag},
						Action:    reportProjectAction,
					},
				},
			},
			{
				Name:  "git",
				Usage: "Estimate time from git commit history",
				Subcommands: []*cli.Command{
					{
						Name:   "analyze",
						Usage:  "Show estimated durations for commits without recording anything",
						Flags:  []cli.Flag{repoFlag, sinceFlag, commitFlag},
						Action: gitAnalyzeAction,
					},
					{
						Name:   "import",
						Usage:  "Record commit-derived time entries",
						Flags:  []cli.Flag{repoFlag, sinceFlag, commitFlag, projectFlag},
						Action: gitImportAction,
					},
				},
			},
		},
	}
}
