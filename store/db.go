package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/timespan/internal/models"
)

// EntryFilter narrows ListTimeEntries. Zero values leave the corresponding
// dimension unconstrained.
type EntryFilter struct {
	ProjectID uuid.UUID
	Start     time.Time
	End       time.Time
}

// DB is the database storage interface.
type DB interface {
	// CreateProject persists a new project. Names are unique
	// (case-sensitive exact match).
	CreateProject(p *models.Project) error
	// UpdateProject overwrites an existing project record.
	UpdateProject(p *models.Project) error
	GetProject(id uuid.UUID) (*models.Project, error)
	GetProjectByName(name string) (*models.Project, error)
	// ListProjects returns all projects ordered by name.
	ListProjects() ([]models.Project, error)
	// DeleteProject removes a project that no time entry references.
	DeleteProject(id uuid.UUID) error

	// CreateTimeEntry persists a completed entry. The referenced project
	// must exist and the duration is recomputed from the timestamps.
	CreateTimeEntry(e *models.TimeEntry) error
	// UpdateTimeEntry overwrites an existing entry (tag edits only).
	UpdateTimeEntry(e *models.TimeEntry) error
	// ListTimeEntries returns matching entries ordered by start time
	// ascending.
	ListTimeEntries(f EntryFilter) ([]models.TimeEntry, error)

	// SaveTimer writes the singleton timer row, failing with
	// ErrTimerExists if one is already present.
	SaveTimer(t *models.Timer) error
	// UpdateTimer overwrites the existing timer row (tag edits only).
	UpdateTimer(t *models.Timer) error
	GetTimer() (*models.Timer, error)
	DeleteTimer() error

	Close() error
}
