// Package timer operates the start/stop state machine for the single
// in-progress tracking session.
//
// The state machine has two states: Idle (no timer row in the store) and
// Running (exactly one timer row). The store's singleton constraint is the
// source of truth, so the state survives process restarts and concurrent
// invocations. A Running timer left behind by a killed process stays Running
// until explicitly stopped; that is documented behaviour, not a bug.
package timer

import (
	"errors"
	"time"

	"github.com/ayoisaiah/timespan/internal/models"
	"github.com/ayoisaiah/timespan/store"
)

// Status reports the current state of the timer. Elapsed is recomputed at
// the time of the call, never cached.
type Status struct {
	Running   bool
	Project   string
	Task      string
	StartTime time.Time
	Elapsed   time.Duration
}

// Start begins tracking time against the named project. It fails with
// ErrAlreadyTracking when a timer is running, and never disturbs the running
// timer.
func Start(db store.DB, projectName, task string) (*models.Timer, error) {
	project, err := db.GetProjectByName(projectName)
	if err != nil {
		return nil, err
	}

	t := &models.Timer{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Task:        task,
		StartTime:   time.Now(),
	}

	err = db.SaveTimer(t)
	if err != nil {
		if errors.Is(err, store.ErrTimerExists) {
			return nil, alreadyTracking(db)
		}

		return nil, err
	}

	return t, nil
}

// alreadyTracking reads back the running timer so the conflict error can
// name its project.
func alreadyTracking(db store.DB) error {
	cur, err := db.GetTimer()
	if err != nil {
		// The winning start's timer vanished between the conflict and
		// the read-back; report the conflict without a project name.
		return ErrAlreadyTracking.Fmt("another project")
	}

	return ErrAlreadyTracking.Fmt(cur.ProjectName)
}

// Stop completes the running timer: it derives a time entry from the timer
// row, persists the entry, and removes the row. Fails with ErrNotTracking
// when no timer is running.
func Stop(db store.DB) (*models.TimeEntry, error) {
	t, err := db.GetTimer()
	if err != nil {
		if errors.Is(err, store.ErrNoTimer) {
			return nil, ErrNotTracking
		}

		return nil, err
	}

	entry := models.NewTimeEntry(
		t.ProjectID,
		t.ProjectName,
		t.Task,
		t.StartTime,
		time.Now(),
		models.SourceManual,
	)

	for _, tag := range t.Tags {
		entry.AddTag(tag)
	}

	err = db.CreateTimeEntry(entry)
	if err != nil {
		return nil, err
	}

	err = db.DeleteTimer()
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Tag adds tags to the running timer. The tags carry into the time entry on
// stop.
func Tag(db store.DB, tags ...string) (*models.Timer, error) {
	t, err := db.GetTimer()
	if err != nil {
		if errors.Is(err, store.ErrNoTimer) {
			return nil, ErrNotTracking
		}

		return nil, err
	}

	for _, tag := range tags {
		t.AddTag(tag)
	}

	err = db.UpdateTimer(t)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// CurrentStatus reports whether a timer is running and, if so, its project,
// task, and elapsed time.
func CurrentStatus(db store.DB) (*Status, error) {
	t, err := db.GetTimer()
	if err != nil {
		if errors.Is(err, store.ErrNoTimer) {
			return &Status{}, nil
		}

		return nil, err
	}

	return &Status{
		Running:   true,
		Project:   t.ProjectName,
		Task:      t.Task,
		StartTime: t.StartTime,
		Elapsed:   t.Elapsed(),
	}, nil
}
