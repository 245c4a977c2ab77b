package remote

import (
	"errors"
	"fmt"
)

// StatusError is a non-2xx answer. Bodies of failed responses are not read.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: remote returned status %d", e.Method, e.Path, e.Code)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// Reject tags a non-2xx error with sentinel. Transport failures already carry
// domain.ErrNetwork and pass through unchanged.
func Reject(err, sentinel error) error {
	if err == nil || StatusCode(err) == 0 {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
