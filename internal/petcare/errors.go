package petcare

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the API rejects the session credential.
// The client has already asked its token source to invalidate the credential
// by the time callers see this error.
var ErrUnauthorized = errors.New("petcare: credential rejected")

// APIError is a structured rejection from the appointment API. Detail holds
// the server-supplied human-readable message when one was present.
type APIError struct {
	Operation  string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("petcare: %s failed with status %d: %s", e.Operation, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("petcare: %s failed with status %d", e.Operation, e.StatusCode)
}

// Message resolves the text shown to users for a failed call: the server
// detail when present, then the per-operation fallback, then the raw error.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
