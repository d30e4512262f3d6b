package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors returned by the services. The API layer maps them to HTTP
// status codes with errors.Is.
var (
	// ErrMomentNotFound indicates that no moment has the requested ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrMomentNotFound = errors.New("moment not found")

	// ErrTaskNotFound indicates that the moment has no task with the requested ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrImmutableField is returned when an update tries to change a field
	// that only the lifecycle operations may set.
	ErrImmutableField = errors.New("field cannot be changed by an update")

	// ErrAssistantFailed is the single error surfaced for any planning
	// assistant failure. The cause is logged, never returned.
	ErrAssistantFailed = errors.New("the assistant could not complete the request")

	// ErrAssistantDisabled is returned when no assistant is configured.
	ErrAssistantDisabled = errors.New("the assistant is not configured")
)

// WorkflowError wraps a refused or failed command with the command name and
// the moment it targeted.
type WorkflowError struct {
	Command  string
	MomentID uuid.UUID
	Err      error
}

// Error implements the error interface for WorkflowError.
func (e *WorkflowError) Error() string {
	if e.MomentID == uuid.Nil {
		return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Command, e.MomentID, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *WorkflowError) Unwrap() error {
	return e.Err
}
