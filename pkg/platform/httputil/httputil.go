// Package httputil centralizes JSON response writing and error mapping so
// handlers stay small and consistent.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "careerhub/pkg/domain-errors"
)

// messageResponse is the wire envelope for errors and simple acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

// WriteJSON encodes v with the given status. Encoding failures are silently
// dropped; by then the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {"message": ...} acknowledgement with the given status.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, messageResponse{Message: message})
}

// WriteError maps a coded domain error to its HTTP status and writes the
// user-presentable message. Internal errors get a generic message; the cause
// belongs in logs, not on the wire.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.HTTPStatus(code)

	message := dErrors.MessageOf(err)
	if code == dErrors.CodeInternal || message == "" {
		message = "Internal server error."
	}
	WriteJSON(w, status, messageResponse{Message: message})
}

// Decode parses the JSON request body into T. Returns a CodeBadRequest error
// on malformed input so callers can pass it straight to WriteError.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, dErrors.New(dErrors.CodeBadRequest, "Invalid request body.")
	}
	return v, nil
}
