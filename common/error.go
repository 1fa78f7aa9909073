package common

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is the error code of an error.
type Code int

const (
	// Ok means no error.
	Ok Code = iota
	// Invalid means the input failed validation.
	Invalid
	// NotFound means the requested entity does not exist.
	NotFound
	// Unauthorized means the caller did not present a valid credential.
	Unauthorized
	// Internal means an unexpected internal failure.
	Internal
)

// Error wraps an underlying error with a Code so callers can map it to a
// transport status without string matching.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error with the given code and formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{
		Code: code,
		Err:  fmt.Errorf(format, args...),
	}
}

// ErrorCode extracts the Code from err, or Internal when err carries none.
func ErrorCode(err error) Code {
	if err == nil {
		return Ok
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}

// FormatError wraps a low-level error (usually from the database driver) as an
// Internal error with a stack, so it is distinguishable from domain errors.
func FormatError(err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code: Internal,
		Err:  errors.Wrap(err, "unexpected store error"),
	}
}
