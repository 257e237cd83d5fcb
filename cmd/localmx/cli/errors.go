// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so callers (and scripts
// wrapping the binary) can distinguish bad input from environment
// problems without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required flags, wrong argument count, unparseable values.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// unknown service name, missing generated file.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryConflict indicates the operation conflicts with existing
	// state or configuration: incompatible feature flags, an output
	// that already exists and was declined.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, or a container runtime command that failed.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands. It wraps
// an inner error, preserving the full chain for errors.Is/As while
// adding category metadata. Use the category-specific constructors
// rather than constructing ToolError directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category is not
// included in the string.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error: the operation conflicts with existing state.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
