// Package api wires the HTTP surface: routing, request validation, and
// the mapping from domain errors to status codes.
package api

import (
	"encoding/json"
	"net/http"
)

// JSONResponse writes a JSON response with the given status.
func JSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// messageResponse writes the {"message": ...} error shape used for
// auth, upload, and server errors.
func messageResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, map[string]string{"message": message})
}

// fieldErrorResponse writes a 400 with the machine-readable list of
// offending fields.
func fieldErrorResponse(w http.ResponseWriter, errs []FieldError) {
	JSONResponse(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
}
