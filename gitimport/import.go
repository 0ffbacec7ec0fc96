package gitimport

import (
	"errors"

	"github.com/ayoisaiah/timespan/internal/models"
	"github.com/ayoisaiah/timespan/store"
)

// Result pairs a commit's analysis with its estimate for display and
// import.
type Result struct {
	Analysis models.CommitAnalysis
	Estimate models.CommitEstimate
}

// AnalyzeAll runs each commit through the analyzer and estimator.
func AnalyzeAll(est *Estimator, commits []models.GitCommit) []Result {
	results := make([]Result, 0, len(commits))

	for _, c := range commits {
		a := Analyze(c)

		results = append(results, Result{
			Analysis: a,
			Estimate: est.Estimate(a),
		})
	}

	return results
}

// Import writes one time entry per estimated commit against the given
// project. Each entry ends at the commit timestamp, starts the estimated
// duration earlier, and carries the short commit hash as a tag. Commits
// already imported (matched by hash tag) are skipped, so re-running an
// import is idempotent.
func Import(
	db store.DB,
	project *models.Project,
	results []Result,
) ([]models.TimeEntry, error) {
	existing, err := db.ListTimeEntries(store.EntryFilter{ProjectID: project.ID})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	for i := range existing {
		for _, tag := range existing[i].Tags {
			seen[tag] = true
		}
	}

	var imported []models.TimeEntry

	for _, r := range results {
		commit := r.Analysis.Commit
		if seen[commit.ShortHash()] {
			continue
		}

		end := commit.Timestamp
		start := end.Add(-r.Estimate.Duration)

		entry := models.NewTimeEntry(
			project.ID,
			project.Name,
			SubjectLine(commit.Message),
			start,
			end,
			models.SourceGit,
		)
		entry.AddTag(commit.ShortHash())

		if err := db.CreateTimeEntry(entry); err != nil {
			return imported, err
		}

		imported = append(imported, *entry)
	}

	return imported, nil
}

// ResolveProject finds the project commits should be recorded against: an
// explicit name wins, then an existing project matching the repository
// directory (with or without the client prefix), then a project created
// from the directory name.
func ResolveProject(
	db store.DB,
	repoPath, explicitName string,
) (*models.Project, error) {
	if explicitName != "" {
		return db.GetProjectByName(explicitName)
	}

	name := DetectProjectName(repoPath)

	for _, candidate := range []string{name, "[CLIENT] " + name} {
		p, err := db.GetProjectByName(candidate)
		if err == nil {
			return p, nil
		}

		if !errors.Is(err, store.ErrProjectNotFound) {
			return nil, err
		}
	}

	p := models.NewProject(name, "")
	if err := db.CreateProject(p); err != nil {
		return nil, err
	}

	return p, nil
}
