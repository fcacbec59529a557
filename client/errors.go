package client

import (
	"errors"
	"fmt"
)

// Domain errors for API calls. Transport and decode failures wrap
// ErrConnection so callers can route them to the generic connection-error
// notification; structured server rejections surface as *Error.
var (
	ErrConnection = errors.New("library API connection failed")
	ErrInvalidURL = errors.New("invalid library API base URL")
)

// Error is a non-2xx response from the library API. Fields is populated when
// the server returned per-field validation messages; Message carries the
// general error text otherwise.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("library API returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("library API returned status %d", e.Status)
}

// HasFieldErrors reports whether the server rejected specific fields.
func (e *Error) HasFieldErrors() bool {
	return len(e.Fields) > 0
}

// AsError extracts an API error from err, or nil if err is not one.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsConnectionError checks whether an error is a transport or decode failure
// rather than a structured server response.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}
