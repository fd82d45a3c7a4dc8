package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrConfiguration indicates a missing or invalid connector setup
	// (nil connector, empty name, absent client credentials). Fatal at
	// construction time, never retried.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrConnectorNotFound indicates the requested connector name is not
	// registered.
	ErrConnectorNotFound = errors.New("connector not registered")

	// ErrUnsupportedOperation indicates the connector does not implement
	// the dispatched operation.
	ErrUnsupportedOperation = errors.New("operation not supported")

	// ErrValidation indicates malformed caller input: an auth object
	// missing required fields, or a malformed packed channel identifier.
	// Raised before any network call is attempted.
	ErrValidation = errors.New("invalid input")

	// ErrUpstream indicates a failure returned by a backend's native API,
	// including token refresh failures. Never retried by this layer.
	ErrUpstream = errors.New("upstream provider error")

	// ErrAlreadyRevoked indicates a revocation request for a token the
	// provider no longer recognises. Recoverable: the credential is gone
	// either way.
	ErrAlreadyRevoked = errors.New("credentials already revoked")
)

// UpstreamError carries the backend's status and message alongside the
// ErrUpstream sentinel so callers can branch with errors.Is and still see
// what the provider said.
type UpstreamError struct {
	// Provider is the connector name that produced the failure.
	Provider string
	// StatusCode is the upstream HTTP status, zero when unknown.
	StatusCode int
	// Message is the upstream error message, if any.
	Message string
	// Err is the underlying transport or API error.
	Err error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s: upstream error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: upstream error (status %d)", e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: upstream error: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: upstream error", e.Provider)
	}
}

// Is reports ErrUpstream so errors.Is(err, ErrUpstream) matches.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Unwrap returns the underlying error.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
