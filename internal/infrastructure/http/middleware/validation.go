package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	nethttpmiddleware "github.com/oapi-codegen/nethttp-middleware"

	"github.com/rezkam/weekly/internal/infrastructure/http/response"
)

// ValidationConfig holds configuration for the OpenAPI validation middleware.
type ValidationConfig struct {
	// MultiError when true collects all validation errors instead of stopping at first.
	MultiError bool
}

// NewValidator creates OpenAPI request validation middleware.
// The middleware validates incoming requests against the OpenAPI spec,
// returning 400 Bad Request for invalid requests.
//
// Bearer checks on admin routes are done by AdminAuth, so the
// spec's security requirements are not enforced here.
func NewValidator(spec *openapi3.T, config ValidationConfig) func(http.Handler) http.Handler {
	// Set base path to /api without host validation
	// This matches our router mounting at /api
	spec.Servers = openapi3.Servers{
		{URL: "/api"},
	}

	opts := &nethttpmiddleware.Options{
		Options: openapi3filter.Options{
			MultiError: config.MultiError,
			// Handled by AdminAuth.
			AuthenticationFunc: func(_ context.Context, _ *openapi3filter.AuthenticationInput) error {
				return nil
			},
		},
		ErrorHandlerWithOpts:  validationErrorHandler,
		SilenceServersWarning: true, // We use relative path /api, not full host
	}

	return nethttpmiddleware.OapiRequestValidatorWithOptions(spec, opts)
}

// validationErrorHandler writes the validator's failure in the standard
// error envelope, with one detail per field it could identify.
func validationErrorHandler(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, opts nethttpmiddleware.ErrorHandlerOpts) {
	details := parseValidationError(err)

	slog.WarnContext(ctx, "request validation failed",
		"path", r.URL.Path,
		"method", r.Method,
		"invalid_field_count", len(details),
		"error", err.Error())

	status := opts.StatusCode
	if status == 0 {
		status = http.StatusBadRequest
	}
	response.Write(w, status, response.ErrorResponse{
		Error: response.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: details,
		},
	})
}

// parseValidationError extracts field-specific validation details from OpenAPI errors.
// Returns an empty array if no specific fields can be extracted.
func parseValidationError(err error) []response.ErrorField {
	if err == nil {
		return []response.ErrorField{}
	}

	// Try to extract field information from error message
	// OpenAPI validation errors typically have format like:
	// - "request body has an error: doesn't match schema: Error at \"/content\": minimum string length is 1"
	// - "parameter \"member\" in query has an error: value is required but missing"
	// - "request body has an error: value is required but missing"

	errMsg := err.Error()
	details := []response.ErrorField{}

	// Common patterns in OpenAPI validation errors
	patterns := []struct {
		marker  string
		extract func(string) *response.ErrorField
	}{
		{
			marker: "Error at \"/",
			extract: func(msg string) *response.ErrorField {
				// Extract field from: Error at "/field": issue
				start := len("Error at \"/")
				idx := strings.Index(msg, "Error at \"/")
				if idx == -1 {
					return nil
				}
				rest := msg[idx+start:]
				endQuote := strings.Index(rest, "\"")
				if endQuote == -1 {
					return nil
				}
				field := rest[:endQuote]

				// Extract issue after the colon
				colonIdx := strings.Index(rest, ":")
				if colonIdx == -1 || colonIdx+2 >= len(rest) {
					return &response.ErrorField{Field: field, Issue: "validation failed"}
				}
				issue := strings.TrimSpace(rest[colonIdx+1:])

				return &response.ErrorField{Field: field, Issue: issue}
			},
		},
		{
			marker: "parameter \"",
			extract: func(msg string) *response.ErrorField {
				// Extract from: parameter "field" in query has an error: issue
				start := len("parameter \"")
				idx := strings.Index(msg, "parameter \"")
				if idx == -1 {
					return nil
				}
				rest := msg[idx+start:]
				endQuote := strings.Index(rest, "\"")
				if endQuote == -1 {
					return nil
				}
				field := rest[:endQuote]

				// Extract issue after "has an error:"
				errorMarker := "has an error:"
				errorIdx := strings.Index(rest, errorMarker)
				if errorIdx == -1 {
					return &response.ErrorField{Field: field, Issue: "invalid parameter"}
				}
				issue := strings.TrimSpace(rest[errorIdx+len(errorMarker):])

				return &response.ErrorField{Field: field, Issue: issue}
			},
		},
		{
			marker: "request body",
			extract: func(msg string) *response.ErrorField {
				// Generic request body error without specific field
				if strings.Contains(msg, "doesn't match the schema") ||
					strings.Contains(msg, "doesn't match schema") {
					return &response.ErrorField{Field: "body", Issue: "request body doesn't match schema"}
				}
				if strings.Contains(msg, "required") {
					return &response.ErrorField{Field: "body", Issue: "required field missing"}
				}
				return &response.ErrorField{Field: "body", Issue: "invalid request body"}
			},
		},
	}

	// Try each pattern
	for _, p := range patterns {
		if strings.Contains(errMsg, p.marker) {
			if detail := p.extract(errMsg); detail != nil {
				details = append(details, *detail)
				break // Use first match
			}
		}
	}

	// If no pattern matched, return empty array (not nil)
	if len(details) == 0 {
		return []response.ErrorField{}
	}

	return details
}
