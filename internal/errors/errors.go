// Package errors provides the error taxonomy for dmn. Filesystem failures
// are classified into NotFound, AccessDenied and WriteFailure so callers
// can branch with errors.Is instead of matching strings.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are re-exported so callers need a single import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinel errors.
var (
	// ErrNotFound indicates that a directory or file required by the operation is missing.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates a permission failure on read or write.
	ErrAccessDenied = errors.New("access denied")

	// ErrWriteFailure indicates an interrupted or partial write.
	ErrWriteFailure = errors.New("write failure")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents a missing directory or file.
type NotFoundError struct {
	Resource string
	Path     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Path)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, path string) *NotFoundError {
	return &NotFoundError{Resource: resource, Path: path}
}

// AccessDeniedError represents a permission failure.
type AccessDeniedError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: cannot %s %s", e.Op, e.Path)
}

// Unwrap implements errors.Unwrap.
func (e *AccessDeniedError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *AccessDeniedError) Is(target error) bool {
	return target == ErrAccessDenied
}

// NewAccessDeniedError creates a new AccessDeniedError.
func NewAccessDeniedError(op, path string, err error) *AccessDeniedError {
	return &AccessDeniedError{Op: op, Path: path, Err: err}
}

// WriteError represents a write that did not complete.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailure
}

// NewWriteError creates a new WriteError.
func NewWriteError(path string, err error) *WriteError {
	return &WriteError{Path: path, Err: err}
}

// IOError represents any other filesystem failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// FromFS classifies a filesystem error. Missing paths become a
// NotFoundError for resource, permission failures an AccessDeniedError,
// anything else an IOError. A nil err returns nil.
func FromFS(op, resource, path string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return NewNotFoundError(resource, path)
	case errors.Is(err, fs.ErrPermission):
		return NewAccessDeniedError(op, path, err)
	default:
		return NewIOError(op, path, err)
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAccessDenied checks if an error is a permission failure.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsWriteFailure checks if an error is a failed write.
func IsWriteFailure(err error) bool {
	return errors.Is(err, ErrWriteFailure)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
