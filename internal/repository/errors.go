package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("upstream unavailable")
)

// MapStatus translates a backend HTTP status into a domain error.
// I only map what I expect to handle explicitly at higher layers; every
// other non-2xx status collapses into ErrUnavailable with the code kept
// for logging.
func MapStatus(status int, path string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	default:
		return fmt.Errorf("%w: %s returned %d", ErrUnavailable, path, status)
	}
}
