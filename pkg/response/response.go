package response

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the standard JSON response structure.
type Envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains client-safe error information.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes data wrapped in the standard envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Data: data})
}

// Error writes an error response. Known HTTPError values keep their status
// and code; anything else becomes an opaque 500 so internal failure detail
// never reaches the client.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{Code: "internal_error"}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		detail.Code = httpErr.Key
	}

	var valErr ValidationError
	if errors.As(err, &valErr) {
		status = http.StatusUnprocessableEntity
		detail.Code = "validation_failed"
		detail.Details = valErr.Fields
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Error: detail})
}

// ValidationError carries per-field validation failures.
type ValidationError struct {
	Fields map[string][]string
}

func (e ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Fields: map[string][]string{field: {message}}}
}
