// Package response renders the JSON envelope every API handler speaks:
// status plus data on success, status plus message (and a field error
// map for validation) on failure.
package response

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success renders data with a 200.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, envelope{Status: http.StatusOK, Data: data})
}

// Created renders data with a 201.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, envelope{Status: http.StatusCreated, Data: data})
}

// Error renders a bare status and message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, envelope{Status: status, Message: message})
}

// ValidationError renders a 422 carrying the per-field messages from
// validate.Struct.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func Unauthorized(w http.ResponseWriter) { Error(w, http.StatusUnauthorized, "Unauthorized") }
func Forbidden(w http.ResponseWriter)    { Error(w, http.StatusForbidden, "Forbidden") }
func NotFound(w http.ResponseWriter)     { Error(w, http.StatusNotFound, "Not found") }
