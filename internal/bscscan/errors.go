package bscscan

import (
	"errors"
	"fmt"
)

// NetworkError indicates a transport-level failure (connection error,
// timeout, or an HTTP error status before any API payload was read).
// Transient failures are retried with backoff; Permanent marks statuses
// retrying cannot heal, such as a 404.
type NetworkError struct {
	Err       error
	Permanent bool
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError indicates that the explorer answered but reported a failure.
// RateLimited errors are transient and retried; everything else (invalid
// key, invalid address, malformed payloads) is permanent.
type APIError struct {
	// Message is the provider-supplied error message, preserved verbatim
	// so the user can distinguish e.g. an invalid key from a bad address.
	Message string
	// RateLimited is set when the provider reports its rate limit was hit.
	RateLimited bool
	// Malformed is set when the response body could not be parsed at all.
	Malformed bool
}

func (e *APIError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("api error: malformed response: %s", e.Message)
	}

	return fmt.Sprintf("api error: %s", e.Message)
}

// isTransient reports whether the given fetch failure is worth retrying.
func isTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.RateLimited
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return !netErr.Permanent
	}

	return false
}
