// Package errors provides structured error types for followgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the crawler, the store and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes split into fatal and recoverable classes:
//   - CORRUPT_FORMAT, UNRESOLVED_HANDLE, INVALID_*: fatal, abort the crawl
//   - PROVIDER_ERROR: recoverable per account, the explorer skips and continues
//   - USER_CANCELLED: recoverable per phase, the crawl ends with partial results
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCorruptFormat, "line %d: %q", n, line)
//	if errors.Is(err, errors.ErrCodeCorruptFormat) {
//	    // Report and abort
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeProvider, origErr, "fetch followers of %d", id)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Persisted edge log errors
	ErrCodeCorruptFormat Code = "CORRUPT_FORMAT"
	ErrCodeStorage       Code = "STORAGE_ERROR"

	// Provider errors
	ErrCodeUnresolvedHandle Code = "UNRESOLVED_HANDLE"
	ErrCodeProvider         Code = "PROVIDER_ERROR"
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeNetwork          Code = "NETWORK_ERROR"
	ErrCodeRateLimited      Code = "RATE_LIMITED"
	ErrCodeUnauthorized     Code = "UNAUTHORIZED"

	// Control flow
	ErrCodeUserCancelled Code = "USER_CANCELLED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// so an outer code does not hide an inner one.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsCancelled reports whether err stems from a cancelled context or carries
// ErrCodeUserCancelled.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || Is(err, ErrCodeUserCancelled)
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
