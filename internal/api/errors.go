package api

import (
	"fmt"
	"net/http"

	"github.com/TerminusTerminal/invest-desk/internal/common"
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Body   string
	Status int
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API error (status %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("API error (status %d)", e.Status)
}

// Unwrap maps well-known statuses onto the shared error taxonomy so
// callers can react with errors.Is. An unauthorized response in
// particular tears down the session guard.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return common.ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return common.ErrNotFound
	case e.Status >= 500:
		return common.ErrServer
	default:
		return nil
	}
}

func statusError(status int, body []byte) error {
	const maxBody = 512
	text := string(body)
	if len(text) > maxBody {
		text = text[:maxBody]
	}
	return &StatusError{Status: status, Body: text}
}
