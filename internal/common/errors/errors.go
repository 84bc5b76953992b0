// Package errors provides standardized error handling for the gateway's
// HTTP surface. Every failure ends up as a GatewayError so handlers can
// render a consistent {error, details} body with the right status code.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Client input errors (HTTP 400)
	ErrCodeMissingToken     ErrorCode = "MISSING_TOKEN"
	ErrCodeMissingOperation ErrorCode = "MISSING_OPERATION"
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
	ErrCodeMissingBody      ErrorCode = "MISSING_BODY"
	ErrCodeMissingField     ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidBody      ErrorCode = "INVALID_BODY"

	// Upstream failures (HTTP 500)
	ErrCodeUpstreamFailure ErrorCode = "UPSTREAM_FAILURE"
	ErrCodeUpstreamDecode  ErrorCode = "UPSTREAM_DECODE_FAILED"

	// Everything else (HTTP 500)
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// GatewayError represents a structured application error.
type GatewayError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("GatewayError[%s]: %s", e.Code, e.Message)
}

// --- Constructors ---

// NewMissingTokenError reports an absent token query parameter.
func NewMissingTokenError() *GatewayError {
	return &GatewayError{
		Code:      ErrCodeMissingToken,
		Message:   "Token is required",
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingOperationError reports an absent operation selector.
func NewMissingOperationError() *GatewayError {
	return &GatewayError{
		Code:      ErrCodeMissingOperation,
		Message:   "Operation is required",
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidOperationError reports an unknown operation selector.
func NewInvalidOperationError(operation string) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeInvalidOperation,
		Message:   "Invalid operation",
		Details:   fmt.Sprintf("operation: %s", operation),
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingBodyError reports an absent or unreadable JSON body.
func NewMissingBodyError() *GatewayError {
	return &GatewayError{
		Code:      ErrCodeMissingBody,
		Message:   "Body is required",
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingFieldError reports required body fields that were not sent.
// The message is caller-facing and names the fields, e.g.
// "conversationId and servicerequestId are required in the body".
func NewMissingFieldError(message string) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeMissingField,
		Message:   message,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidBodyError reports a body that failed schema validation.
func NewInvalidBodyError(details string) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeInvalidBody,
		Message:   "Invalid request body",
		Details:   details,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError reports a non-2xx response from a collaborator. The
// upstream status text and body are surfaced to the caller unretried.
func NewUpstreamError(service string, statusCode int, body string) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeUpstreamFailure,
		Message:   fmt.Sprintf("Failed to fetch data from %s", service),
		Details:   fmt.Sprintf("status %d: %s", statusCode, strings.TrimSpace(body)),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamCallError reports a transport-level failure reaching a
// collaborator (connection refused, timeout from client defaults).
func NewUpstreamCallError(service string, err error) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeUpstreamFailure,
		Message:   fmt.Sprintf("Failed to fetch data from %s", service),
		Details:   err.Error(),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamDecodeError reports an upstream payload that was not valid JSON.
func NewUpstreamDecodeError(service string, err error) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeUpstreamDecode,
		Message:   "Failed to parse JSON response",
		Details:   fmt.Sprintf("service: %s, error: %s", service, err.Error()),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps anything that escaped classification.
func NewInternalError(err error) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeInternal,
		Message:   "Request failed",
		Details:   err.Error(),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// --- Utility Functions ---

// AsGatewayError unwraps err to a *GatewayError when possible.
func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if stderrors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// HTTPStatus returns the response status code for any error.
func HTTPStatus(err error) int {
	if ge, ok := AsGatewayError(err); ok && ge.Status != 0 {
		return ge.Status
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether the error is the caller's fault.
func IsClientError(err error) bool {
	return HTTPStatus(err) >= 400 && HTTPStatus(err) < 500
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "MISSING") || strings.Contains(codeStr, "INVALID"):
		return "CLIENT_INPUT"
	case strings.Contains(codeStr, "UPSTREAM"):
		return "UPSTREAM"
	default:
		return "INTERNAL"
	}
}
