// Package httpx implements the uniform JSON envelope shared by all
// controllers: {status: "success"|"error", ...}.
package httpx

import (
	"encoding/json"
	"net/http"
)

// FieldError is a single per-field validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type envelope struct {
	Status  string       `json:"status"`
	Results *int         `json:"results,omitempty"`
	Data    any          `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope around a single resource.
func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Data: data})
}

// Created writes a 201 success envelope around a newly created resource.
func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Status: "success", Data: data})
}

// List writes a success envelope around a collection, including the
// result count.
func List(w http.ResponseWriter, count int, data any) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Results: &count, Data: data})
}

// Message writes a success envelope carrying only a message.
func Message(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Status: "success", Message: msg})
}

// CreatedMessage writes a 201 envelope with both a message and data,
// used by the contact form acknowledgement.
func CreatedMessage(w http.ResponseWriter, msg string, data any) {
	writeJSON(w, http.StatusCreated, envelope{Status: "success", Message: msg, Data: data})
}

// Error writes an error envelope with the given status and message.
func Error(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Status: "error", Message: msg})
}

// NotFound writes the 404 fallback envelope, pointing the caller at the
// routes that do exist.
func NotFound(w http.ResponseWriter, routes []string) {
	writeJSON(w, http.StatusNotFound, struct {
		Status          string   `json:"status"`
		Message         string   `json:"message"`
		AvailableRoutes []string `json:"availableRoutes"`
	}{"error", "Route not found", routes})
}

// FieldErrors writes a 400 error envelope listing per-field violations.
func FieldErrors(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, envelope{Status: "error", Errors: errs})
}
