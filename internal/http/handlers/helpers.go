// Package handlers implements the JSON endpoints served to the booking
// widget and the staff dashboard frontends.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpaws/frontdesk/internal/petcare"
)

// errorResponse is the uniform error payload. Detail carries the text the
// frontend shows verbatim.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeAPIError maps an upstream failure to a response: the server's own
// status and detail when available, otherwise 502 with the per-action
// fallback text.
func writeAPIError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, petcare.ErrUnauthorized) {
		writeError(w, http.StatusUnauthorized, "Session expired, please sign in again")
		return
	}
	status := http.StatusBadGateway
	var apiErr *petcare.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	writeError(w, status, petcare.Message(err, fallback))
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
