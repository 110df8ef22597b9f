// Package errors provides the error types shared by hrdesk services and adapters.
// Typed errors implement Is so callers can classify failures with errors.Is
// against the sentinels below.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// New is an alias for the standard library errors.New.
var New = errors.New

// Is, As and Unwrap re-export the standard helpers so callers only need one import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Sentinel errors.
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a record already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamRead indicates that reading from a collaborator failed
	ErrUpstreamRead = errors.New("upstream read failed")

	// ErrUpstreamWrite indicates that writing to a collaborator failed
	ErrUpstreamWrite = errors.New("upstream write failed")

	// ErrTimeout indicates that an upstream call exceeded its deadline
	ErrTimeout = errors.New("upstream timeout")
)

// NotFoundError represents an error when a record is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// UpstreamReadError reports that a collection could not be fetched.
type UpstreamReadError struct {
	Resource string // "employees", "salary_history", ...
	Err      error
}

// Error implements the error interface
func (e *UpstreamReadError) Error() string {
	if isDeadline(e.Err) {
		return fmt.Sprintf("timed out reading %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("failed to read %s: %v", e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *UpstreamReadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *UpstreamReadError) Is(target error) bool {
	if target == ErrUpstreamRead {
		return true
	}
	return target == ErrTimeout && isDeadline(e.Err)
}

// NewUpstreamReadError creates a new UpstreamReadError
func NewUpstreamReadError(resource string, err error) *UpstreamReadError {
	return &UpstreamReadError{Resource: resource, Err: err}
}

// UpstreamWriteError reports that a single record write failed.
type UpstreamWriteError struct {
	Operation  string // "close", "create", "update"
	Resource   string
	RecordID   string
	EmployeeID string
	Err        error
}

// Error implements the error interface
func (e *UpstreamWriteError) Error() string {
	verb := "failed to"
	if isDeadline(e.Err) {
		verb = "timed out trying to"
	}
	if e.RecordID != "" {
		return fmt.Sprintf("%s %s %s %s: %v", verb, e.Operation, e.Resource, e.RecordID, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", verb, e.Operation, e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *UpstreamWriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *UpstreamWriteError) Is(target error) bool {
	if target == ErrUpstreamWrite {
		return true
	}
	return target == ErrTimeout && isDeadline(e.Err)
}

// NewUpstreamWriteError creates a new UpstreamWriteError
func NewUpstreamWriteError(operation, resource, recordID, employeeID string, err error) *UpstreamWriteError {
	return &UpstreamWriteError{
		Operation:  operation,
		Resource:   resource,
		RecordID:   recordID,
		EmployeeID: employeeID,
		Err:        err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUpstreamRead checks if an error is an upstream read failure
func IsUpstreamRead(err error) bool {
	return errors.Is(err, ErrUpstreamRead)
}

// IsUpstreamWrite checks if an error is an upstream write failure
func IsUpstreamWrite(err error) bool {
	return errors.Is(err, ErrUpstreamWrite)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func isDeadline(err error) bool {
	return err != nil && errors.Is(err, context.DeadlineExceeded)
}
