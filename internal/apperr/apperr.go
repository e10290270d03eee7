// Package apperr defines the error kinds that cross the request boundary and how
// each maps to an HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

// Error kinds. Match with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream failure")
)

// Error carries a kind, a short message safe to log, and an optional cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidInput returns a client-caused error.
func InvalidInput(msg string) *Error {
	return &Error{Kind: ErrInvalidInput, Msg: msg}
}

// NotFound returns a missing-entity error.
func NotFound(msg string) *Error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

// Upstream wraps a store or gateway failure.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: ErrUpstream, Msg: msg, Err: err}
}

// StatusCode maps an error to the HTTP status the handlers answer with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
