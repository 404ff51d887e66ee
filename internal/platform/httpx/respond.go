// Package httpx provides HTTP response, error and request logging utilities
// shared by every handler.
package httpx

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes bounds every decoded request body.
const maxBodyBytes = 1 << 20

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Result sends a 200 response wrapping data as {"result": data}.
func Result(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, map[string]any{"result": data})
}

// DecodeJSON decodes the JSON request body into target. Failures are returned
// as *BodyError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(target); err != nil {
		return &BodyError{Err: err}
	}
	return nil
}
