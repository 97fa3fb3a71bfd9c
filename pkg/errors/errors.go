// Package errors provides standardized error handling for the trafficgen
// system. It implements structured error types with proper wrapping following
// Go 1.20+ error handling practices.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Identity-related errors
	ErrAddressExhausted = errors.New("no usable host addresses in block")

	// Adapter-related errors
	ErrNoAdapters      = errors.New("no suitable network adapters found")
	ErrAdapterNotFound = errors.New("network adapter not found")

	// Configuration-related errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNoSites       = errors.New("site list is empty")
)

// NetworkError represents an error related to a network adapter operation
type NetworkError struct {
	Adapter   string
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("adapter %s: operation %s: %v", e.Adapter, e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// WrapNetworkError wraps an error with adapter context
func WrapNetworkError(adapter, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &NetworkError{
		Adapter:   adapter,
		Operation: operation,
		Err:       err,
	}
}

// CommandError represents a failed system command, keeping the captured
// output so the cause can be logged in a human-readable form.
type CommandError struct {
	Cmd    string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("command '%s' failed: %v: %s", e.Cmd, e.Err, e.Output)
	}
	return fmt.Sprintf("command '%s' failed: %v", e.Cmd, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// WrapCommandError wraps a command execution failure with its output
func WrapCommandError(cmd, output string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{
		Cmd:    cmd,
		Output: output,
		Err:    err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
