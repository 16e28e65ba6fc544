// Package errors provides structured error types for guidecard.
//
// Errors carry a machine-readable [Code] so the CLI and the HTTP API can map
// failures to exit messages and status codes without string matching.
//
// # Error Codes
//
//   - INVALID_*: input or configuration rejected before any work starts
//   - CAPTURE_FAILED, ASSEMBLY_FAILED, DOWNLOAD_FAILED: export stage failures
//   - INTERNAL_ERROR: anything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidStyle) {
//	    // reject the request
//	}
//
//	err := errors.Wrap(errors.ErrCodeAssembly, cause, "assemble %d frames", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"
	ErrCodeInvalidFont   Code = "INVALID_FONT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Export errors
	ErrCodeCapture  Code = "CAPTURE_FAILED"
	ErrCodeAssembly Code = "ASSEMBLY_FAILED"
	ErrCodeDownload Code = "DOWNLOAD_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
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

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error values
// and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err was caused by rejected input or config.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidStyle, ErrCodeInvalidFont, ErrCodeInvalidConfig:
		return true
	}
	return false
}
