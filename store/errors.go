package store

import "github.com/ayoisaiah/timespan/internal/apperr"

var (
	// ErrTimespanRunning signals that the database file is locked by
	// another timespan process.
	ErrTimespanRunning = &apperr.Error{
		Kind:    apperr.Conflict,
		Message: "is timespan already running? Only one instance can be active at a time",
	}

	// ErrStorage hides the detail of an underlying persistence failure.
	// The cause is logged, never surfaced.
	ErrStorage = &apperr.Error{
		Kind:    apperr.Storage,
		Message: "storage operation failed",
	}

	ErrNameInvalid = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "project name must be non-empty and at most %d characters",
	}

	ErrDescriptionInvalid = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "project description must be at most %d characters",
	}

	ErrEntryInvalid = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "time entry end must not be earlier than its start",
	}

	ErrProjectExists = &apperr.Error{
		Kind:    apperr.Conflict,
		Message: "project already exists: %s",
	}

	ErrProjectNotFound = &apperr.Error{
		Kind:    apperr.NotFound,
		Message: "project not found",
	}

	ErrEntryNotFound = &apperr.Error{
		Kind:    apperr.NotFound,
		Message: "time entry not found",
	}

	ErrProjectInUse = &apperr.Error{
		Kind:    apperr.Precondition,
		Message: "cannot delete a project with recorded time entries",
	}

	// ErrNoTimer is returned when no timer row exists.
	ErrNoTimer = &apperr.Error{
		Kind:    apperr.NotFound,
		Message: "no timer is running",
	}

	// ErrTimerExists enforces the single-timer invariant at the storage
	// layer so it holds across racing invocations.
	ErrTimerExists = &apperr.Error{
		Kind:    apperr.Conflict,
		Message: "a timer is already running",
	}
)
