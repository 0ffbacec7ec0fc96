package app

import "github.com/ayoisaiah/timespan/internal/apperr"

var (
	errProjectNameRequired = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "a project name argument is required",
	}

	errTagRequired = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "at least one tag argument is required",
	}

	errDescriptionRequired = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "a --description flag is required",
	}
)
