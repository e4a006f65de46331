// internal/api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoIdentity is returned before any I/O when the configured id is not an integer.
var ErrNoIdentity = errors.New("api: identity id must be an integer")

// ErrNoHost is returned by New when no base URL is configured.
var ErrNoHost = errors.New("api: host address required")

// HTTPError is a non-2xx response from the server.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: %s %s: HTTP %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Code exposes the HTTP status as a uint16 error code.
func (e *HTTPError) Code() uint16 { return uint16(e.StatusCode) }

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *HTTPError.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
