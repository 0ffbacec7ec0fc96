package timer

import "github.com/ayoisaiah/timespan/internal/apperr"

var (
	// ErrAlreadyTracking is returned by Start while a timer is running.
	// The message carries the currently tracked project so callers can
	// report it.
	ErrAlreadyTracking = &apperr.Error{
		Kind:    apperr.Conflict,
		Message: "already tracking %q, stop it before starting another timer",
	}

	// ErrNotTracking is returned by Stop and Tag when no timer is
	// running.
	ErrNotTracking = &apperr.Error{
		Kind:    apperr.NotFound,
		Message: "no timer is running",
	}
)
