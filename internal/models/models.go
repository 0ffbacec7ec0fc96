// Package models defines the entities persisted and exchanged by timespan.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Source records how a time entry came to exist.
type Source string

const (
	SourceManual Source = "manual"
	SourceGit    Source = "git"
)

// Project is a named bucket that time entries are recorded against.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	// ClientPath is the directory a discovered client project was found in.
	ClientPath string    `json:"client_path,omitempty"`
	Client     bool      `json:"client"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewProject returns a project with a fresh identity.
func NewProject(name, description string) *Project {
	now := time.Now()

	return &Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewClientProject returns a project discovered from a client directory.
func NewClientProject(name, description, path string) *Project {
	p := NewProject(name, description)
	p.Client = true
	p.ClientPath = path

	return p
}

// Timer is the single in-progress tracking session. At most one exists at
// any instant; the store enforces this.
type Timer struct {
	ProjectID   uuid.UUID `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Task        string    `json:"task,omitempty"`
	StartTime   time.Time `json:"start_time"`
	Tags        []string  `json:"tags,omitempty"`
}

// Elapsed reports the wall-clock time since the timer started. It is
// recomputed on every call, never cached.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.StartTime)
}

// AddTag appends a tag unless it is already present.
func (t *Timer) AddTag(tag string) {
	for _, v := range t.Tags {
		if v == tag {
			return
		}
	}

	t.Tags = append(t.Tags, tag)
}

// TimeEntry is a completed tracking session. It is immutable once created
// except for tag edits.
type TimeEntry struct {
	ID          uuid.UUID     `json:"id"`
	ProjectID   uuid.UUID     `json:"project_id"`
	ProjectName string        `json:"project_name"`
	Task        string        `json:"task,omitempty"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Duration    time.Duration `json:"duration"`
	Tags        []string      `json:"tags,omitempty"`
	Source      Source        `json:"source"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewTimeEntry builds a completed entry. The duration is always derived from
// the start and end timestamps regardless of what the caller computed.
func NewTimeEntry(
	projectID uuid.UUID,
	projectName, task string,
	start, end time.Time,
	source Source,
) *TimeEntry {
	now := time.Now()

	return &TimeEntry{
		ID:          uuid.New(),
		ProjectID:   projectID,
		ProjectName: projectName,
		Task:        task,
		StartTime:   start,
		EndTime:     end,
		Duration:    end.Sub(start),
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddTag appends a tag unless it is already present.
func (e *TimeEntry) AddTag(tag string) {
	for _, v := range e.Tags {
		if v == tag {
			return
		}
	}

	e.Tags = append(e.Tags, tag)
	e.UpdatedAt = time.Now()
}

// GitCommit is raw commit metadata read from a repository. It is never
// persisted.
type GitCommit struct {
	Hash           string
	Message        string
	Author         string
	AuthorEmail    string
	Timestamp      time.Time
	FilesChanged   []string
	Insertions     int
	Deletions      int
	RepositoryPath string
}

// TotalChanges is the combined insertion and deletion count.
func (c *GitCommit) TotalChanges() int {
	return c.Insertions + c.Deletions
}

// ShortHash returns the abbreviated commit hash.
func (c *GitCommit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}

	return c.Hash
}

// CommitAnalysis is a commit together with the derived features the
// estimator consumes.
type CommitAnalysis struct {
	Commit GitCommit
	// Extensions maps each lowercased file extension (without the dot) to
	// the number of changed files carrying it.
	Extensions map[string]int
	// Keywords holds the closed keyword set matched case-insensitively
	// against the commit message.
	Keywords map[string]bool
}

// Classification is the closed set of commit categories.
type Classification string

const (
	Feature       Classification = "feature"
	BugFix        Classification = "bugfix"
	Test          Classification = "test"
	Documentation Classification = "documentation"
	Refactor      Classification = "refactor"
	Other         Classification = "other"
)

// CommitEstimate is the estimator's verdict for a single commit.
type CommitEstimate struct {
	Duration       time.Duration
	Classification Classification
	// Confidence is in [0, 1] and reflects how many independent signals
	// agree with the classification.
	Confidence float64
}
