package admin

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrNetwork      = errors.New("network error")
	ErrServer       = errors.New("server error")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx answer of the backend. It unwraps to one of the
// sentinels above.
type APIError struct {
	Status int
	Detail string
	kind   error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func (e *APIError) Unwrap() error { return e.kind }

func newAPIError(status int, detail string) *APIError {
	var kind error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = ErrUnauthorized
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = ErrValidation
	default:
		kind = ErrServer
	}
	return &APIError{Status: status, Detail: detail, kind: kind}
}
