package config

import "github.com/ayoisaiah/timespan/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "config option error",
	}

	errReadConfig = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Kind:    apperr.Storage,
		Message: "writing default config failed",
	}
)
