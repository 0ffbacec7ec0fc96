// Package gitimport turns git commit history into estimated time entries.
//
// The analyzer shells out to git rather than linking a libgit binding: the
// CLI runs one short-lived invocation at a time, and the porcelain output of
// git log is stable. Commits are yielded oldest-first so replaying an import
// is deterministic.
package gitimport

import (
	"bytes"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ayoisaiah/timespan/internal/models"
)

const (
	// recordSep and fieldSep delimit commits and commit fields in the
	// git log output so multi-line messages parse unambiguously.
	recordSep = "\x1e"
	fieldSep  = "\x1f"

	logFormat = recordSep + "%H" + fieldSep + "%an" + fieldSep + "%ae" +
		fieldSep + "%aI" + fieldSep + "%B" + fieldSep
)

// Commits reads commit metadata from the repository at repoPath, oldest
// first. A non-zero since bounds the history; a non-empty hash restricts the
// output to that single commit.
func Commits(
	repoPath string,
	since time.Time,
	hash string,
) ([]models.GitCommit, error) {
	args := []string{
		"-C", repoPath,
		"log",
		"--reverse",
		"--numstat",
		"--pretty=format:" + logFormat,
	}

	if !since.IsZero() {
		args = append(args, "--since="+since.Format(time.RFC3339))
	}

	if hash != "" {
		args = append(args, "-1", hash)
	}

	cmd := exec.Command("git", args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Error("git log failed",
			slog.String("repo", repoPath),
			slog.String("stderr", strings.TrimSpace(stderr.String())),
			slog.Any("error", err),
		)

		return nil, ErrGit.Wrap(err)
	}

	return parseLog(stdout.String(), repoPath)
}

// parseLog structures raw git log output into commits. Separated from
// Commits so the parsing is testable without a repository.
func parseLog(out, repoPath string) ([]models.GitCommit, error) {
	var commits []models.GitCommit

	for _, record := range strings.Split(out, recordSep) {
		if strings.TrimSpace(record) == "" {
			continue
		}

		fields := strings.SplitN(record, fieldSep, 6)
		if len(fields) != 6 {
			return nil, errBadLog
		}

		timestamp, err := time.Parse(time.RFC3339, fields[3])
		if err != nil {
			return nil, errBadLog.Wrap(err)
		}

		c := models.GitCommit{
			Hash:           fields[0],
			Author:         fields[1],
			AuthorEmail:    fields[2],
			Timestamp:      timestamp,
			Message:        strings.TrimSpace(fields[4]),
			RepositoryPath: repoPath,
		}

		parseNumstat(&c, fields[5])

		commits = append(commits, c)
	}

	return commits, nil
}

// parseNumstat folds "insertions<TAB>deletions<TAB>path" lines into the
// commit. Binary files report "-" counts and contribute no line changes.
func parseNumstat(c *models.GitCommit, block string) {
	for _, line := range strings.Split(block, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), "\t", 3)
		if len(parts) != 3 {
			continue
		}

		if n, err := strconv.Atoi(parts[0]); err == nil {
			c.Insertions += n
		}

		if n, err := strconv.Atoi(parts[1]); err == nil {
			c.Deletions += n
		}

		c.FilesChanged = append(c.FilesChanged, parts[2])
	}
}

// SubjectLine returns the first line of a commit message.
func SubjectLine(msg string) string {
	if i := strings.Index(msg, "\n"); i >= 0 {
		return strings.TrimSpace(msg[:i])
	}

	return msg
}

// DetectProjectName suggests a project name for a repository path: the base
// name of the repository directory.
func DetectProjectName(repoPath string) string {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return filepath.Base(repoPath)
	}

	return filepath.Base(abs)
}
