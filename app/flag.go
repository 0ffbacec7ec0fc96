package app

import "github.com/urfave/cli/v2"

var (
	taskFlag = &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Describe the task being worked on",
	}

	descriptionFlag = &cli.StringFlag{
		Name:    "description",
		Aliases: []string{"d"},
		Usage:   "Describe the project",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "Report on the day (or week) containing this date (e.g. '2024-01-15' or 'yesterday'). Defaults to today",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the report as JSON",
	}

	repoFlag = &cli.StringFlag{
		Name:    "repo",
		Aliases: []string{"r"},
		Usage:   "Path to the git repository. Defaults to the current directory",
		Value:   ".",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only consider commits after this date (e.g. '7 days ago')",
	}

	commitFlag = &cli.StringFlag{
		Name:  "commit",
		Usage: "Restrict the operation to a single commit hash",
	}

	projectFlag = &cli.StringFlag{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "Record imported entries against this project instead of the one derived from the repository name",
	}

	discoverPathFlag = &cli.StringFlag{
		Name:     "path",
		Usage:    "Base directory to scan for client project directories",
		Required: true,
	}

	discoverPrefixFlag = &cli.StringFlag{
		Name:  "prefix",
		Usage: "Prefix for discovered project names",
		Value: "[CLIENT]",
	}

	dryRunFlag = &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Show what would be created without writing anything",
	}
)
