package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeHTTP         = "HTTP_ERROR"
	ErrCodeTransport    = "TRANSPORT_ERROR"
)

// APIError represents a failed HTTP exchange with the backend. Status is
// zero for transport-level failures where no response was received.
type APIError struct {
	Code    string // Error code (e.g. "UNAUTHORIZED", "RATE_LIMITED")
	Message string // Human-readable error message
	Status  int    // HTTP status code, 0 when no response arrived
	Path    string // Request path that produced the error
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates an APIError for a non-2xx response.
func NewHTTPError(status int, path, body string) *APIError {
	code := ErrCodeHTTP
	switch status {
	case http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case http.StatusTooManyRequests:
		code = ErrCodeRateLimited
	case http.StatusNotFound:
		code = ErrCodeNotFound
	}
	return &APIError{
		Code:    code,
		Message: fmt.Sprintf("%s returned status %d: %s", path, status, body),
		Status:  status,
		Path:    path,
	}
}

// NewTransportError creates an APIError for a request that never received
// a response.
func NewTransportError(path string, err error) *APIError {
	return &APIError{
		Code:    ErrCodeTransport,
		Message: fmt.Sprintf("request to %s failed", path),
		Path:    path,
		Err:     err,
	}
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an
// APIError or no response was received.
func StatusOf(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsRateLimited reports whether err is a 429 response.
func IsRateLimited(err error) bool {
	return StatusOf(err) == http.StatusTooManyRequests
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsTransport reports whether err is a network-level failure with no
// HTTP response.
func IsTransport(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.Code == ErrCodeTransport
}
