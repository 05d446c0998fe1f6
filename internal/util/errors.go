package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types for chunkflow
var (
	// ErrInvalidConfig indicates a configuration error (worker count, partitioner settings)
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRange indicates an iteration space whose end is unreachable from its begin
	ErrInvalidRange = errors.New("invalid range")

	// ErrCancelled indicates an operation was cancelled
	ErrCancelled = errors.New("operation cancelled")

	// ErrShutdown indicates the executor is shutting down
	ErrShutdown = errors.New("executor shutting down")

	// ErrCoverage indicates a chunk plan that does not partition its range exactly
	ErrCoverage = errors.New("chunk coverage violated")
)

// TaskError wraps an error with the name of the task that produced it
type TaskError struct {
	Task string
	Err  error
}

// Error implements the error interface
func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q: %v", e.Task, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/As compatibility
func (e *TaskError) Unwrap() error {
	return e.Err
}

// WrapTaskError wraps an error with task context
func WrapTaskError(task string, err error) error {
	if err == nil {
		return nil
	}
	return &TaskError{
		Task: task,
		Err:  err,
	}
}

// MultiError aggregates multiple errors
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:", len(m.Errors)))
	for i, err := range m.Errors {
		if i < 10 {
			sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
		} else {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more errors", len(m.Errors)-10))
			break
		}
	}
	return sb.String()
}

// Unwrap returns the errors for errors.Is/As compatibility
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Add adds an error to the multi-error
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// ErrorOrNil returns nil if no errors were added, otherwise returns the MultiError
func (m *MultiError) ErrorOrNil() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// NewMultiError creates a new MultiError from a slice of errors
// It filters out nil errors
func NewMultiError(errs []error) *MultiError {
	m := &MultiError{
		Errors: make([]error, 0, len(errs)),
	}
	for _, err := range errs {
		m.Add(err)
	}
	return m
}

// ValidationError represents a validation failure.
// It matches ErrInvalidConfig under errors.Is unless Kind says otherwise.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string

	// Kind is the sentinel this failure belongs to (defaults to ErrInvalidConfig)
	Kind error
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	if v.Value != nil {
		return fmt.Sprintf("validation failed for field %q (value: %v): %s", v.Field, v.Value, v.Message)
	}
	return fmt.Sprintf("validation failed for field %q: %s", v.Field, v.Message)
}

// Unwrap returns the sentinel kind
func (v *ValidationError) Unwrap() error {
	if v.Kind == nil {
		return ErrInvalidConfig
	}
	return v.Kind
}

// NewValidationError creates a new configuration validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewRangeError creates a validation error for a malformed iteration space
func NewRangeError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Kind:    ErrInvalidRange,
	}
}

// IsCancelled checks if an error is a cancellation error
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsInvalidConfig checks if an error stems from bad configuration or a malformed range
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrInvalidRange)
}

// FriendlyError converts technical errors to user-friendly messages
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case IsCancelled(err):
		return "Operation was cancelled."
	case errors.Is(err, ErrShutdown):
		return "Executor is shutting down; no new work is accepted."
	case errors.Is(err, ErrInvalidRange):
		return "Invalid range: end is not reachable from begin with the given step. " + err.Error()
	case errors.Is(err, ErrInvalidConfig):
		return "Invalid configuration. Please check your config file and command-line flags. " + err.Error()
	default:
		return err.Error()
	}
}

// CombineErrors combines multiple errors into a single error
// Returns nil if all errors are nil
func CombineErrors(errs ...error) error {
	return NewMultiError(errs).ErrorOrNil()
}

// WrapErrorf wraps an error with a formatted message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
