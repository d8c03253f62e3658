package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// envelope is the body every endpoint answers with: an error flag, a message
// and an optional payload merged at the top level.
type envelope map[string]any

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonOK writes a successful envelope.
func jsonOK(w http.ResponseWriter, message string, payload envelope) {
	body := envelope{"error": false, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	jsonResponse(w, http.StatusOK, body)
}

// jsonError writes a failed envelope.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, envelope{"error": true, "message": message})
}

// decodeJSON decodes a JSON request body into the given target. An empty
// body decodes as an empty object and leaves target untouched.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	err := json.NewDecoder(r.Body).Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
