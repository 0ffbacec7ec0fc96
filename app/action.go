package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/timespan/gitimport"
	"github.com/ayoisaiah/timespan/internal/config"
	"github.com/ayoisaiah/timespan/internal/discover"
	"github.com/ayoisaiah/timespan/internal/models"
	"github.com/ayoisaiah/timespan/internal/timeutil"
	"github.com/ayoisaiah/timespan/internal/ui"
	"github.com/ayoisaiah/timespan/report"
	"github.com/ayoisaiah/timespan/store"
	"github.com/ayoisaiah/timespan/timer"
)

func openDB() (*store.Client, error) {
	return store.NewClient(config.DBFilePath())
}

func loadConfig() (*config.Config, error) {
	return config.New(config.WithViperConfig(config.ConfigFilePath()))
}

// dateArg resolves the --date flag, defaulting to now.
func dateArg(ctx *cli.Context) (time.Time, error) {
	s := ctx.String("date")
	if s == "" {
		return time.Now(), nil
	}

	return timeutil.FromStr(s)
}

func startAction(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return errProjectNameRequired
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := timer.Start(db, name, ctx.String("task"))
	if err != nil {
		return err
	}

	pterm.Success.Printfln("started tracking %q", t.ProjectName)

	return nil
}

func stopAction(ctx *cli.Context) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	entry, err := timer.Stop(db)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"recorded %s against %q",
		ui.FormatDuration(entry.Duration),
		entry.ProjectName,
	)

	runEntryCmd(entry)

	return nil
}

// runEntryCmd executes the configured post-entry hook with the project name
// as its final argument. Hook failures are reported but never fail the stop.
func runEntryCmd(entry *models.TimeEntry) {
	cfg, err := loadConfig()
	if err != nil || cfg.Settings.EntryCmd == "" {
		return
	}

	args, err := shellquote.Split(cfg.Settings.EntryCmd)
	if err != nil || len(args) == 0 {
		pterm.Warning.Printfln("invalid entry_cmd: %v", err)
		return
	}

	args = append(args, entry.ProjectName)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		pterm.Warning.Printfln("entry_cmd failed: %v", err)
	}
}

func statusAction(ctx *cli.Context) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := timer.CurrentStatus(db)
	if err != nil {
		return err
	}

	if !status.Running {
		pterm.Info.Println("no timer is running")
		return nil
	}

	msg := fmt.Sprintf(
		"tracking %q for %s",
		status.Project,
		ui.FormatDuration(status.Elapsed),
	)
	if status.Task != "" {
		msg += fmt.Sprintf(" (%s)", status.Task)
	}

	pterm.Info.Println(msg)

	return nil
}

func tagAction(ctx *cli.Context) error {
	tags := ctx.Args().Slice()
	if len(tags) == 0 {
		return errTagRequired
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := timer.Tag(db, tags...)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("tags on %q: %v", t.ProjectName, t.Tags)

	return nil
}

// entryTagAction tags the most recently recorded time entry, so a forgotten
// tag can be added after stop.
func entryTagAction(ctx *cli.Context) error {
	tags := ctx.Args().Slice()
	if len(tags) == 0 {
		return errTagRequired
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.ListTimeEntries(store.EntryFilter{})
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return store.ErrEntryNotFound
	}

	entry := &entries[len(entries)-1]

	for _, tag := range tags {
		entry.AddTag(tag)
	}

	err = db.UpdateTimeEntry(entry)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("tags on the last entry for %q: %v", entry.ProjectName, entry.Tags)

	return nil
}

func projectCreateAction(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return errProjectNameRequired
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	p := models.NewProject(name, ctx.String("description"))

	err = db.CreateProject(p)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("created project %q", p.Name)

	return nil
}

func projectListAction(ctx *cli.Context) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	projects, err := db.ListProjects()
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		pterm.Info.Println("no projects yet")
		return nil
	}

	data := [][]string{{"NAME", "DESCRIPTION", "CLIENT", "CREATED"}}

	for i := range projects {
		p := &projects[i]

		client := ""
		if p.Client {
			client = p.ClientPath
		}

		data = append(data, []string{
			p.Name,
			p.Description,
			client,
			p.CreatedAt.Format("2006-01-02"),
		})
	}

	ui.PrintTable(data, os.Stdout)

	return nil
}

func projectEditAction(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return errProjectNameRequired
	}

	if !ctx.IsSet("description") {
		return errDescriptionRequired
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.GetProjectByName(name)
	if err != nil {
		return err
	}

	p.Description = ctx.String("description")
	p.UpdatedAt = time.Now()

	err = db.UpdateProject(p)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("updated project %q", p.Name)

	return nil
}

func projectDeleteAction(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return errProjectNameRequired
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.GetProjectByName(name)
	if err != nil {
		return err
	}

	err = db.DeleteProject(p.ID)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("deleted project %q", p.Name)

	return nil
}

func projectDiscoverAction(ctx *cli.Context) error {
	candidates, err := discover.Candidates(
		ctx.String("path"),
		ctx.String("prefix"),
	)
	if err != nil {
		slog.Error("client discovery failed", slog.Any("error", err))
		return store.ErrStorage.Wrap(err)
	}

	// only directories that are git repositories are client projects
	repos := candidates[:0]

	for _, c := range candidates {
		if c.Git {
			repos = append(repos, c)
		}
	}

	if len(repos) == 0 {
		pterm.Info.Println("no client repositories found")
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var created int

	for _, c := range repos {
		if ctx.Bool("dry-run") {
			pterm.Info.Printfln("would create %q (%s)", c.Name, c.Path)
			continue
		}

		p := models.NewClientProject(c.Name, "", c.Path)

		err := db.CreateProject(p)
		if err != nil {
			// Existing client projects are expected on rescan.
			if errors.Is(err, store.ErrProjectExists) {
				continue
			}

			return err
		}

		created++

		pterm.Success.Printfln("created %q", p.Name)
	}

	if !ctx.Bool("dry-run") {
		pterm.Info.Printfln("%d of %d client projects created", created, len(repos))
	}

	return nil
}

func reportDailyAction(ctx *cli.Context) error {
	date, err := dateArg(ctx)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := report.Daily(db, date)
	if err != nil {
		return err
	}

	return printReport(ctx, r)
}

func reportWeeklyAction(ctx *cli.Context) error {
	date, err := dateArg(ctx)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := report.Weekly(db, date, cfg.WeekStart())
	if err != nil {
		return err
	}

	return printReport(ctx, r)
}

func reportProjectAction(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return errProjectNameRequired
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := report.ForProject(db, name)
	if err != nil {
		return err
	}

	return printReport(ctx, r)
}

func printReport(ctx *cli.Context, r *report.Report) error {
	if ctx.Bool("json") {
		b, err := r.ExportJSON()
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, string(b))

		return nil
	}

	if r.Empty() {
		pterm.Info.Println("no entries found for the specified period")
		return nil
	}

	data := [][]string{{"PROJECT", "TASK", "START", "END", "DURATION"}}

	for i := range r.Entries {
		e := &r.Entries[i]

		data = append(data, []string{
			e.ProjectName,
			e.Task,
			e.StartTime.Format("2006-01-02 15:04"),
			e.EndTime.Format("2006-01-02 15:04"),
			ui.FormatDuration(e.Duration),
		})
	}

	ui.PrintTable(data, os.Stdout)

	summary := [][]string{{"PROJECT", "ENTRIES", "TOTAL"}}

	for _, s := range r.ProjectSummaries {
		summary = append(summary, []string{
			s.ProjectName,
			strconv.Itoa(s.EntryCount),
			ui.FormatDuration(s.TotalDuration),
		})
	}

	ui.PrintTable(summary, os.Stdout)

	pterm.Info.Printfln("total: %s", ui.FormatDuration(r.TotalDuration))

	return nil
}

// commitResults reads and analyzes commits per the git command flags.
func commitResults(ctx *cli.Context) ([]gitimport.Result, error) {
	var since time.Time

	if s := ctx.String("since"); s != "" {
		parsed, err := timeutil.FromStr(s)
		if err != nil {
			return nil, err
		}

		since = parsed
	}

	commits, err := gitimport.Commits(
		ctx.String("repo"),
		since,
		ctx.String("commit"),
	)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	est := gitimport.NewEstimator(cfg.Estimator)

	return gitimport.AnalyzeAll(est, commits), nil
}

func gitAnalyzeAction(ctx *cli.Context) error {
	results, err := commitResults(ctx)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		pterm.Info.Println("no commits found")
		return nil
	}

	data := [][]string{{"COMMIT", "SUBJECT", "TYPE", "ESTIMATE", "CONFIDENCE"}}

	for _, r := range results {
		commit := r.Analysis.Commit

		data = append(data, []string{
			commit.ShortHash(),
			subject(commit.Message),
			string(r.Estimate.Classification),
			ui.FormatDuration(r.Estimate.Duration),
			fmt.Sprintf("%.2f", r.Estimate.Confidence),
		})
	}

	ui.PrintTable(data, os.Stdout)

	return nil
}

func gitImportAction(ctx *cli.Context) error {
	results, err := commitResults(ctx)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		pterm.Info.Println("no commits found")
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	project, err := gitimport.ResolveProject(
		db,
		ctx.String("repo"),
		ctx.String("project"),
	)
	if err != nil {
		return err
	}

	imported, err := gitimport.Import(db, project, results)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"imported %d of %d commits into %q",
		len(imported),
		len(results),
		project.Name,
	)

	return nil
}

// subject is a commit's subject line truncated for table display.
func subject(msg string) string {
	const maxLen = 50

	runes := []rune(gitimport.SubjectLine(msg))
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}

	return string(runes)
}
