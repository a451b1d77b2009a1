package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates the caller supplied an empty or malformed message
	ErrValidation = errors.New("validation failed")

	// ErrResourceNotFound indicates a declared resource could not be read
	ErrResourceNotFound = errors.New("resource not found")

	// ErrRemoteService covers every failure reported by the remote model service
	ErrRemoteService = errors.New("remote service error")
)

// ValidationError describes a rejected message or content part
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ResourceNotFoundError reports a resource path that could not be read
type ResourceNotFoundError struct {
	Path string
	Err  error
}

func (e *ResourceNotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrResourceNotFound, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", ErrResourceNotFound, e.Path, e.Err)
}

func (e *ResourceNotFoundError) Unwrap() error { return e.Err }

func (e *ResourceNotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

// RemoteServiceError wraps a failure returned by a provider SDK.
// The original error is kept intact and reachable through Unwrap.
type RemoteServiceError struct {
	Provider   string
	Model      string
	StatusCode int
	Err        error
}

func (e *RemoteServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (%s, status %d): %v", ErrRemoteService, e.Provider, e.Model, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s (%s): %v", ErrRemoteService, e.Provider, e.Model, e.Err)
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }

func (e *RemoteServiceError) Is(target error) bool {
	return target == ErrRemoteService
}
