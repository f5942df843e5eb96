package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for 401/403 responses. The session treats it as
// an invalid or expired token and forces re-authentication.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is a non-2xx response that is not an authorization failure
type StatusError struct {
	Code    int
	Message string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("gateway: unexpected status %d: %s", e.Code, e.Message)
}
