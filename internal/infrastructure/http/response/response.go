// Package response writes JSON success and error bodies in the API's
// standard envelope.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/weekly/internal/domain"
)

// internalErrorJSON is written when a body cannot be encoded.
const internalErrorJSON = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response","details":[]}}`

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details"`
}

// ErrorField describes a field-specific error.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// OK sends a 200 OK response with JSON data.
func OK(w http.ResponseWriter, data any) {
	Write(w, http.StatusOK, data)
}

// Created sends a 201 Created response with JSON data.
func Created(w http.ResponseWriter, data any) {
	Write(w, http.StatusCreated, data)
}

// Write marshals data before writing the status so an encoding failure can
// still be reported as a 500.
func Write(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(internalErrorJSON))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error sends an error response without field details.
func Error(w http.ResponseWriter, code, message string, statusCode int) {
	Write(w, statusCode, ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: []ErrorField{}}})
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// ValidationError sends a 400 validation error with field details.
func ValidationError(w http.ResponseWriter, field, issue string) {
	Write(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: []ErrorField{{Field: field, Issue: issue}},
		},
	})
}

// Unauthorized sends a 401 Unauthorized error.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, "NOT_FOUND", resource+" not found", http.StatusNotFound)
}

// Conflict sends a 409 Conflict error.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, "CONFLICT", message, http.StatusConflict)
}

// BadGateway sends a 502 for a failed call to an external service. The
// cause is logged, not returned.
func BadGateway(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "external call failed", "error", err)
	Error(w, "UPSTREAM_ERROR", "an external service call failed", http.StatusBadGateway)
}

// InternalError sends a 500 Internal Server Error.
// The error is logged server-side; the client gets a generic message.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "internal server error", "error", err)
	}
	Error(w, "INTERNAL_ERROR", "an internal error occurred", http.StatusInternalServerError)
}

// FromDomainError maps domain errors to HTTP responses.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation domain.ValidationError
		notFound   domain.NotFoundError
		conflict   domain.ConflictError
		partial    domain.PartialDeleteError
	)

	switch {
	// 400
	case errors.As(err, &validation):
		ValidationError(w, validation.Field, validation.Issue)
	case errors.Is(err, domain.ErrValidation):
		BadRequest(w, err.Error())

	// 404
	case errors.As(err, &notFound):
		NotFound(w, notFound.Resource)
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, "resource")

	// 409
	case errors.As(err, &conflict):
		Conflict(w, conflict.Error())
	case errors.Is(err, domain.ErrConflict):
		Conflict(w, err.Error())

	// 502
	case errors.As(err, &partial):
		slog.ErrorContext(r.Context(), "member region left partially cleared",
			"label", partial.Label,
			"removed", partial.Removed,
			"remaining", partial.Remaining,
			"error", partial.Err)
		Error(w, "PARTIAL_UPDATE", partial.Error(), http.StatusBadGateway)
	case errors.Is(err, domain.ErrExternalCall):
		BadGateway(w, r, err)

	default:
		InternalError(w, r, err)
	}
}
