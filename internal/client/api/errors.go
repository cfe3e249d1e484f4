package api

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthResolution means no usable token could be obtained from the
	// token source. There is no automatic recovery; the user has to
	// re-authenticate and try again.
	ErrAuthResolution = errors.New("authentication failed: please re-authenticate and try again")

	// ErrEmptyToken is wrapped into ErrAuthResolution when the source
	// returned successfully but with an empty token.
	ErrEmptyToken = errors.New("unable to obtain authentication token")
)

// APIError is returned for any non-2xx response that survived the
// one-shot token-refresh recovery. Message prefers the server-supplied
// detail over a generic status line.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}
