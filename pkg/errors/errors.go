// Package errors provides structured error types for the kicadfp library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - TREE_*: Node tree structure violations
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPad, "custom pad %q has no primitives", number)
//	if errors.Is(err, errors.ErrCodeInvalidPad) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "failed to parse %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidLayer  Code = "INVALID_LAYER"
	ErrCodeInvalidPad    Code = "INVALID_PAD"
	ErrCodeInvalidShape  Code = "INVALID_SHAPE"
	ErrCodeInvalidSeries Code = "INVALID_SERIES"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodePartNotFound   Code = "PART_NOT_FOUND"
	ErrCodeFamilyNotFound Code = "FAMILY_NOT_FOUND"

	// Node tree structure errors
	ErrCodeMultipleParents Code = "TREE_MULTIPLE_PARENTS"
	ErrCodeRecursion       Code = "TREE_RECURSION"
	ErrCodeVirtualChild    Code = "TREE_VIRTUAL_CHILD"

	// Serialization errors
	ErrCodeParse     Code = "PARSE_ERROR"
	ErrCodeSerialize Code = "SERIALIZE_ERROR"
	ErrCodeIO        Code = "IO_ERROR"

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or *FieldErrors with
// a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var fe *FieldErrors
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FieldError describes a single invalid field during construction of a
// domain object (for example a pad or a zone).
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors accumulates per-field validation failures so callers see
// every problem at once instead of fixing them one at a time.
type FieldErrors struct {
	Code   Code
	Fields []FieldError
}

// Error implements the error interface.
func (e *FieldErrors) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%s: %s", e.Code, strings.Join(msgs, "; "))
}

// Add records a field failure with a formatted message.
func (e *FieldErrors) Add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err returns the accumulated error, or nil if no failures were recorded.
func (e *FieldErrors) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	if e.Code == "" {
		e.Code = ErrCodeInvalidInput
	}
	return e
}
