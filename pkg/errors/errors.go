package errors

import (
	"errors"
	"fmt"
)

// Domain error types for the agent and its surfaces

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates insufficient permissions
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")
)

// Workspace API errors

var (
	// ErrWorkspaceUnavailable indicates the workspace API is unreachable
	ErrWorkspaceUnavailable = errors.New("workspace api unavailable")

	// ErrRateLimitExceeded indicates the workspace API rate limit was hit
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Agent errors

var (
	// ErrUnknownTool indicates the model requested a tool that is not registered
	ErrUnknownTool = errors.New("unknown tool")

	// ErrEmptyCompletion indicates the model returned no choices
	ErrEmptyCompletion = errors.New("model returned empty completion")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
