package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON serializes payload with the given status code.
func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeMessage responds with a bare human-readable message field, which
// clients are expected to surface verbatim.
func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}
