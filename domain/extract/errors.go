package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrOffline is returned when the latest availability sample says the
	// service is unreachable. No request is made.
	ErrOffline = errors.New("extraction service offline")
	// ErrMissingInput is returned when no image or no selection exists.
	// No request is made.
	ErrMissingInput = errors.New("image or selection missing")
)

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Code)
}

// StatusCode extracts the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}
