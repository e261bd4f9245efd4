// Package errors provides structured error types for flowter.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures and closed-enumeration violations
//   - UNKNOWN_*, *NOT_FOUND: Missing resources
//   - NETWORK_*: Network-related errors (distributed cache)
//   - INTERNAL_*: Unexpected internal errors
//
// Layout-time enumeration errors (INVALID_MODE, INVALID_DIRECTION,
// INVALID_SIDE, INVALID_GEOMETRY) abort a render pass entirely; there is no
// partial output.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMode, "unknown mode: %q", mode)
//	if errors.Is(err, errors.ErrCodeInvalidMode) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidNodeID    Code = "INVALID_NODE_ID"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidSymbol    Code = "INVALID_SYMBOL"
	ErrCodeInvalidEdgeType  Code = "INVALID_EDGE_TYPE"
	ErrCodeInvalidMarker    Code = "INVALID_MARKER"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidMode      Code = "INVALID_MODE"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"
	ErrCodeInvalidSide      Code = "INVALID_SIDE"
	ErrCodeInvalidGeometry  Code = "INVALID_GEOMETRY"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeUnknownNode  Code = "UNKNOWN_NODE"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Is reports whether any *Error in err's chain carries code. A network
// failure wrapping an invalid input therefore matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err's text for other errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInputError reports whether err was caused by the caller's input rather
// than by the environment. The HTTP API maps these to 4xx responses.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidColor,
		ErrCodeInvalidNodeID, ErrCodeInvalidPath, ErrCodeInvalidSymbol,
		ErrCodeInvalidEdgeType, ErrCodeInvalidMarker, ErrCodeInvalidStyle,
		ErrCodeInvalidMode, ErrCodeUnknownNode:
		return true
	}
	return false
}

// As is [errors.As] from the standard library, re-exported so callers can
// import a single errors package.
func As(err error, target any) bool {
	return errors.As(err, target)
}
