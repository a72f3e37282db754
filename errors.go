package shoptaboard

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors surfaced by the stateful services.
var (
	// ErrUnauthenticated is returned when an operation requiring a token
	// finds none in the token store.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrSessionExpired is returned when the silent refresh chain is
	// exhausted: both the stored access and refresh tokens were rejected.
	// The token store has been cleared when this is returned.
	ErrSessionExpired = errors.New("session expired, please sign in again")

	// ErrEmptyCart is returned by checkout when the server-confirmed cart
	// has no items.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError is a local input validation failure. It is raised before
// any network call; an operation failing with a ValidationError has performed
// no I/O.
type ValidationError struct {
	// Field names the offending input field, when known.
	Field string
	// Message is a human-readable message suitable for direct display.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// APIError is a non-2xx response from the storefront API. Message carries
// the structured message from the response body when the backend provided
// one, else a generic "HTTP error <status>".
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Message is a human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether the error is a not-found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the error is an authorization error.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether the error is a permission error.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsConflict reports whether the error is a conflict error.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// AsAPIError checks if an error is an API error and returns it.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NetworkError is a transport-level failure (DNS, connection refused,
// timeout). It is distinct from an HTTP-status failure: no response was
// obtained at all.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
