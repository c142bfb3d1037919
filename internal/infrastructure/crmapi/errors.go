package crmapi

import (
	"errors"
	"fmt"
	"net/url"
)

// APIError is returned when the backend answers with a non-2xx status. The
// status, content type and body are kept as received.
type APIError struct {
	Op          string
	Method      string
	Path        string
	StatusCode  int
	ContentType string
	Body        []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s %s: backend returned %d", e.Op, e.Method, e.Path, e.StatusCode)
}

// IsTransport reports whether err is a network-level failure: no HTTP
// response was received from the backend.
func IsTransport(err error) bool {
	var ue *url.Error
	return errors.As(err, &ue)
}

// StatusCode returns the backend status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode, true
	}
	return 0, false
}
