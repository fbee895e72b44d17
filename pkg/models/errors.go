package models

import (
	"fmt"
)

// ValidationError represents an invalid configuration value
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Message)
}

// PreconditionError represents a fatal input error detected before any
// scanning starts (bad root directory, unsupported algorithm). The CLI maps
// it to exit code 2.
type PreconditionError struct {
	Message string
	Err     error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for a precondition failure
func (e *PreconditionError) ExitCode() int {
	return 2
}

// NewPreconditionError creates a precondition error wrapping an optional cause
func NewPreconditionError(message string, err error) *PreconditionError {
	return &PreconditionError{Message: message, Err: err}
}
