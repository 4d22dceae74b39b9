package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSONError writes an `{"error": ...}` body with the given status code.
func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
