// Package errors provides the standardized error type shared by the listing
// handlers and its mapping onto HTTP responses.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeQueryExecutionFailed  ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout          ErrorCode = "QUERY_TIMEOUT"
	ErrCodeListingNotFound       ErrorCode = "LISTING_NOT_FOUND"
	ErrCodeAuthentication        ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeReferenceLookupFailed ErrorCode = "REFERENCE_LOOKUP_FAILED"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewQueryExecutionFailedError wraps a failed storage round-trip.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewQueryTimeoutError is returned when the per-request deadline fired.
func NewQueryTimeoutError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewListingNotFoundError(id int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeListingNotFound,
		Message:   "Listing not found",
		Details:   fmt.Sprintf("listingId: %d", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthentication,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReferenceLookupFailedError reports a failed read of a reference table.
func NewReferenceLookupFailedError(table string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReferenceLookupFailed,
		Message:   "Reference data lookup failed",
		Details:   fmt.Sprintf("table: %s, error: %s", table, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. HTTP mapping
// ==========================

var statusMapping = map[ErrorCode]int{
	ErrCodeQueryExecutionFailed:  http.StatusInternalServerError,
	ErrCodeQueryTimeout:          http.StatusInternalServerError,
	ErrCodeListingNotFound:       http.StatusNotFound,
	ErrCodeAuthentication:        http.StatusUnauthorized,
	ErrCodeReferenceLookupFailed: http.StatusInternalServerError,
	ErrCodeInternal:              http.StatusInternalServerError,
}

// HTTPStatus returns the response status for an error code. Unknown codes are
// treated as internal errors.
func HTTPStatus(code ErrorCode) int {
	if status, ok := statusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// PublicMessage is the text placed in the response body. Server-side failures
// never leak their details.
func PublicMessage(code ErrorCode) string {
	switch HTTPStatus(code) {
	case http.StatusNotFound:
		return "Listing not found"
	case http.StatusUnauthorized:
		return "Unauthorized"
	default:
		return "Internal server error"
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewQueryTimeoutError("unknown", err)
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case strings.Contains(codeStr, "AUTHENTICATION"):
		return "AUTH"
	case strings.Contains(codeStr, "REFERENCE"):
		return "REFERENCE"
	default:
		return "OTHER"
	}
}
