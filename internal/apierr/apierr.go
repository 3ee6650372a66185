package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries an HTTP status and a machine-readable code alongside the
// underlying cause. Services return it; handlers translate it to a response.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// BadRequest builds a 400 error with a formatted message.
func BadRequest(code, format string, args ...any) *Error {
	return New(http.StatusBadRequest, code, fmt.Errorf(format, args...))
}

// NotFound builds a 404 error with a formatted message.
func NotFound(code, format string, args ...any) *Error {
	return New(http.StatusNotFound, code, fmt.Errorf(format, args...))
}

// StatusOf extracts the HTTP status from err, defaulting to 500 for
// anything that is not an *Error.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// CodeOf extracts the machine-readable code from err, or "" if none.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
