// Package errors defines the coded errors shared by the densify library,
// CLI, and HTTP API.
//
// Every error that reaches a user carries a [Code]: INVALID_* and
// TOO_MANY_POINTS for bad input, NOT_FOUND and FILE_NOT_FOUND for missing
// resources, INTERNAL_ERROR and UNSUPPORTED otherwise. The API returns the
// code verbatim and picks the status with [HTTPStatus].
//
//	err := errors.New(errors.ErrCodeInvalidStep, "step must be positive, got %g", step)
//	if errors.Is(err, errors.ErrCodeInvalidStep) {
//	    ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidGraph, decodeErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidStep    Code = "INVALID_STEP"
	ErrCodeInvalidSegment Code = "INVALID_SEGMENT"
	ErrCodeInvalidGraph   Code = "INVALID_GRAPH"
	ErrCodeInvalidPolicy  Code = "INVALID_POLICY"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeTooManyPoints  Code = "TOO_MANY_POINTS"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain
// without its code prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Invalid reports whether c describes bad caller input.
func (c Code) Invalid() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidStep, ErrCodeInvalidSegment,
		ErrCodeInvalidGraph, ErrCodeInvalidPolicy, ErrCodeInvalidFormat,
		ErrCodeInvalidPath, ErrCodeTooManyPoints:
		return true
	}
	return false
}

// IsInvalid reports whether err carries a code caused by bad caller input,
// as opposed to an internal failure.
func IsInvalid(err error) bool {
	return GetCode(err).Invalid()
}

// HTTPStatus maps err's code to a response status. Uncoded errors are 500.
func HTTPStatus(err error) int {
	code := GetCode(err)
	switch {
	case code.Invalid():
		return http.StatusBadRequest
	case code == ErrCodeNotFound, code == ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
