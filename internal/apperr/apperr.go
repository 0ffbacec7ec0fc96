// Package apperr defines the error type shared by all timespan packages.
package apperr

import "fmt"

// Kind classifies an error so callers can react to the category without
// inspecting messages.
type Kind string

const (
	Validation   Kind = "validation"
	Conflict     Kind = "conflict"
	NotFound     Kind = "not_found"
	Precondition Kind = "precondition"
	Storage      Kind = "storage"
	Git          Kind = "git"
)

// Error is a typed application error. Message is what the user sees; Err is
// the underlying cause and is only ever written to the log, never surfaced.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	base *Error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fmt returns a copy of e with its message template expanded. The copy still
// matches the original sentinel through errors.Is.
func (e *Error) Fmt(args ...any) *Error {
	c := *e
	c.Message = fmt.Sprintf(e.Message, args...)
	c.base = e.root()

	return &c
}

// Wrap returns a copy of e with an underlying cause attached.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.Err = err
	c.base = e.root()

	return &c
}

// Is matches copies produced by Fmt and Wrap against their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}
