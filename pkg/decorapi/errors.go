package decorapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes the backend is known to emit. The backend is not strict about
// these, so treat them as hints rather than a closed set.
const (
	ErrorCodeValidation   = "validation_error"
	ErrorCodeUnauthorized = "unauthorized"
	ErrorCodeNotFound     = "not_found"
	ErrorCodeServerError  = "server_error"
)

// APIError represents an error response from the CMS backend. It implements
// the error interface and preserves the server-provided message verbatim so
// callers can surface it to an operator unchanged.
type APIError struct {
	// StatusCode is the HTTP status code of the failed response.
	StatusCode int

	// Code is the machine-readable error code, when the backend supplied one.
	Code string

	// Message is the human-readable message from the backend, or a generic
	// fallback derived from the status code.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unauthorized reports whether this error is an authentication failure (401).
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err (or anything it wraps) is an APIError
// carrying HTTP 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
//
// The backend is inconsistent about its error payloads: most endpoints return
// {"message": "..."}, some return {"error": "..."}, and validation failures
// return {"code": "...", "message": "..."}. All shapes are tolerated, with a
// status-text fallback when nothing parses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Code
		switch {
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Error != "":
			apiErr.Message = payload.Error
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return apiErr
}
