package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks failures caused by missing or mistyped inputs.
// Builds stop at the point of failure and keep what was already created.
var ErrConfiguration = errors.New("configuration error")

// ErrNilSpace is returned when a parameter space handle is nil.
var ErrNilSpace = errors.New("parameter space is nil")

// ErrInvariantViolation marks a broken internal contract, such as allocating
// a page while the terminal page still has room.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrProjectNotFound is returned when a project ID cannot be found in the store.
var ErrProjectNotFound = errors.New("project not found")

// ConfigurationError describes which operation failed and on what.
type ConfigurationError struct {
	Op      string // e.g. "build_overlay_layer"
	Subject string // e.g. the parameter or layer name
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Subject, e.Err)
}

// Unwrap lets errors.Is match both ErrConfiguration and the cause.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

// NewConfigurationError wraps cause for op/subject.
func NewConfigurationError(op, subject string, cause error) *ConfigurationError {
	return &ConfigurationError{Op: op, Subject: subject, Err: cause}
}

// ValidationError represents a single structural problem found in a layer.
type ValidationError struct {
	Layer  string
	State  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("layer %q: %s", e.Layer, e.Reason)
	}
	return fmt.Sprintf("layer %q, state %q: %s", e.Layer, e.State, e.Reason)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is/As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
