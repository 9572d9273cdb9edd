// Package errors provides structured errors with stable codes so failures
// can be classified when they are surfaced in the status line or logs.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	CodeConfigLoad  Code = "CONFIG_LOAD"
	CodeConfigParse Code = "CONFIG_PARSE"

	CodeLayoutResolve Code = "LAYOUT_RESOLVE"

	CodeProviderSearch Code = "PROVIDER_SEARCH"

	CodeLibraryRead     Code = "LIBRARY_READ"
	CodeLibraryWrite    Code = "LIBRARY_WRITE"
	CodeLibraryConflict Code = "LIBRARY_CONFLICT"

	CodeInternal Code = "INTERNAL"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code       Code
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a coded error around a cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Underlying: err}
}

// CodeOf extracts the code from err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
