package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrLoginRedirect is returned by the API client when the session is missing or expired.
var ErrLoginRedirect = errors.New("ErrLoginRedirect")

type HTTPError struct {
	StatusCode int
	StatusText string
	Err        error
}

func (m *HTTPError) Error() string {
	if m.StatusText != "" {
		return fmt.Sprintf("%d: %s", m.StatusCode, m.StatusText)
	}

	if m.Err != nil {
		return m.Err.Error()
	}

	return fmt.Sprintf("%d: %s", m.StatusCode, http.StatusText(m.StatusCode))
}

func (m *HTTPError) Unwrap() error {
	return m.Err
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	return 0
}
