package metrics

import (
	"context"
	"errors"
	"net"
)

// ErrorCategory represents a categorized outcome of an upstream call
type ErrorCategory string

const (
	// NoError indicates a successful request
	NoError ErrorCategory = "success"

	// TimeoutError indicates the call exceeded its deadline
	TimeoutError ErrorCategory = "timeout"

	// NetworkError indicates transport-level issues (connection resets, DNS, etc.)
	NetworkError ErrorCategory = "network_error"

	// HTTPError indicates non-200 status codes
	HTTPError ErrorCategory = "http_error"

	// ProfileError indicates an error-shaped payload such as NO_PROFILE
	ProfileError ErrorCategory = "profile_error"

	// DecodeError indicates an undecodable body
	DecodeError ErrorCategory = "decode_error"

	// UnknownError indicates unclassified errors
	UnknownError ErrorCategory = "unknown_error"
)

// CategorizedError carries a category alongside the underlying error
type CategorizedError struct {
	Category ErrorCategory
	Err      error
}

func (e *CategorizedError) Error() string {
	return e.Err.Error()
}

func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// Categorize wraps err with a category
func Categorize(category ErrorCategory, err error) error {
	return &CategorizedError{Category: category, Err: err}
}

// CategorizeError returns the ErrorCategory of err
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return NoError
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TimeoutError
	}

	var categorized *CategorizedError
	if errors.As(err, &categorized) {
		return categorized.Category
	}

	if netErr != nil || errors.Is(err, context.Canceled) {
		return NetworkError
	}

	return UnknownError
}
