// Package errors defines the typed application errors for the pipeline.
//
// Per-record validation failures are NOT represented here; they travel the
// decoder's result channel to the dead-letter queue. This package covers
// pipeline-level failures that abort a run.
package errors

import "fmt"

// ErrorType classifies an application error.
type ErrorType string

const (
	ErrTypeResource   ErrorType = "RESOURCE"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeArithmetic ErrorType = "ARITHMETIC"
)

// AppError is an application-specific error with a type, message, and an
// optional underlying cause.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair to the error.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a new application error.
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{Type: errType, Message: message, Cause: cause}
}

// NewResourceError reports a missing or unreadable input resource. Resource
// errors are fatal and abort the run.
func NewResourceError(message string, cause error) *AppError {
	return New(ErrTypeResource, message, cause)
}

// NewParsingError reports a malformed input that is not recoverable at the
// row level (e.g. a source with no header).
func NewParsingError(message string, cause error) *AppError {
	return New(ErrTypeParsing, message, cause)
}

// NewStorageError reports a failure writing an output artifact.
func NewStorageError(message string, cause error) *AppError {
	return New(ErrTypeStorage, message, cause)
}

// NewConfigError reports invalid configuration.
func NewConfigError(message string, cause error) *AppError {
	return New(ErrTypeConfig, message, cause)
}
