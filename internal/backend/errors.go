package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized means the backend rejected (or we never had) the session's
// bearer token. The session has already been cleared when this is returned.
var ErrUnauthorized = errors.New("backend: unauthorized")

// NetworkError wraps transport failures: the backend was never reached or the
// connection broke before a response arrived.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a response the backend produced on purpose: a non-2xx status or
// a body reporting success=false. Message is shown to the user verbatim.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("backend %d: %s (%s)", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
