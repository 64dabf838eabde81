package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the session file doesn't exist.
	ErrFileNotFound = errors.New("session file not found")

	// ErrUnsupportedFormat indicates a file extension without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported session format")

	// ErrValidationFailed wraps every validation error.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownEventClass indicates an event class id that is not registered.
	ErrUnknownEventClass = errors.New("unknown event class")

	// ErrUnknownCapabilityClass indicates a capability class id that is not
	// registered or not usable where it appears.
	ErrUnknownCapabilityClass = errors.New("unknown capability class")

	// ErrInvalidLogConfig indicates an unknown log level or format.
	ErrInvalidLogConfig = errors.New("invalid log configuration")

	// ErrInvalidListener indicates a malformed listener definition.
	ErrInvalidListener = errors.New("invalid listener")

	// ErrInvalidStep indicates a malformed script step.
	ErrInvalidStep = errors.New("invalid script step")
)

// ParseError represents an error while parsing a session file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes one invalid value of a session.
type ValidationError struct {
	// Path locates the value, such as "script[3].key".
	Path string
	// Message describes the problem.
	Message string
	// Value is the invalid value.
	Value any
	// Kind is the sentinel error categorizing the problem.
	Kind error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns the category and ErrValidationFailed.
func (e *ValidationError) Unwrap() []error {
	return []error{e.Kind, ErrValidationFailed}
}
