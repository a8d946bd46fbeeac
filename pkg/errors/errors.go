// Package errors defines the coded errors returned at linechart's edges.
//
// Aggregation and rendering never fail. Errors come from reading observation
// files, validating observations and options, and encoding artifacts. Each one
// carries a [Code] so the CLI can choose an exit status and the HTTP server a
// response status without string matching.
//
//	obs, err := chartio.Import(path)
//	if errors.Is(err, errors.ErrCodeFileNotFound) {
//	    // exit 2
//	}
//
//	return errors.Wrap(errors.ErrCodeInvalidDataset, err, "observation %d", i)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the machine-readable part of an [Error].
type Code string

const (
	// ErrCodeInvalidInput covers malformed options, flags, query parameters
	// and request bodies.
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// ErrCodeInvalidDataset marks an observation that fails validation
	// (empty user, non-finite category or value).
	ErrCodeInvalidDataset Code = "INVALID_DATASET"

	// ErrCodeInvalidFormat marks an unknown output or input format.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// ErrCodeEmptyDataset means there is nothing to chart.
	ErrCodeEmptyDataset Code = "EMPTY_DATASET"

	// ErrCodeZeroTotal means the values sum to zero, so no percentage exists.
	ErrCodeZeroTotal Code = "ZERO_TOTAL"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"

	// ErrCodeUnsupported marks a feature missing from this host, such as PNG
	// output without rsvg-convert.
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the status code the server answers with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidDataset, ErrCodeInvalidFormat,
		ErrCodeEmptyDataset, ErrCodeZeroTotal:
		return http.StatusBadRequest
	case ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
