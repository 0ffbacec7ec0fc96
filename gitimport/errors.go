package gitimport

import "github.com/ayoisaiah/timespan/internal/apperr"

var (
	// ErrGit hides the detail of a git failure. The cause is logged,
	// never surfaced.
	ErrGit = &apperr.Error{
		Kind:    apperr.Git,
		Message: "repository analysis failed",
	}

	errBadLog = &apperr.Error{
		Kind:    apperr.Git,
		Message: "unexpected git log output",
	}
)
