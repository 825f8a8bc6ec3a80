// Package response holds the JSON response helpers shared by all handlers,
// so every endpoint renders payloads and errors the same way.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error body every endpoint returns. Details carries
// optional context (typically the underlying error text) and is omitted when
// empty.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON writes data as a JSON response with the given status. A nil
// data writes the status alone, which is how 204 No Content responses are
// sent. The status line is already on the wire if encoding fails, so the
// failure is logged rather than surfaced.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// RespondError writes a structured ErrorResponse. Message is the
// user-facing description; details may be the underlying error text, extra
// context such as a validation field map, or empty.
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, http.StatusNotFound, "asset not found", "")
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
