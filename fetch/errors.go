package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrClientRequired is returned when a nil HTTP client is supplied.
	ErrClientRequired = errors.New("HTTP client required")
)

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	Location   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("get %s: HTTP %d", e.Location, e.StatusCode)
}
