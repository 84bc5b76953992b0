package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name            string
		err             *GatewayError
		expectedCode    ErrorCode
		expectedMessage string
		expectedStatus  int
	}{
		{"missing token", NewMissingTokenError(), ErrCodeMissingToken, "Token is required", http.StatusBadRequest},
		{"missing operation", NewMissingOperationError(), ErrCodeMissingOperation, "Operation is required", http.StatusBadRequest},
		{"invalid operation", NewInvalidOperationError("frobnicate"), ErrCodeInvalidOperation, "Invalid operation", http.StatusBadRequest},
		{"missing body", NewMissingBodyError(), ErrCodeMissingBody, "Body is required", http.StatusBadRequest},
		{"missing field", NewMissingFieldError("userId is required in the body"), ErrCodeMissingField, "userId is required in the body", http.StatusBadRequest},
		{"upstream failure", NewUpstreamError("rento", 502, "bad gateway"), ErrCodeUpstreamFailure, "Failed to fetch data from rento", http.StatusInternalServerError},
		{"upstream decode", NewUpstreamDecodeError("rento", fmt.Errorf("unexpected token")), ErrCodeUpstreamDecode, "Failed to parse JSON response", http.StatusInternalServerError},
		{"internal", NewInternalError(fmt.Errorf("boom")), ErrCodeInternal, "Request failed", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, tt.err.Code)
			assert.Equal(t, tt.expectedMessage, tt.err.Message)
			assert.Equal(t, tt.expectedStatus, tt.err.Status)
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestUpstreamError_Details(t *testing.T) {
	err := NewUpstreamError("sheety", 402, "  row limit reached\n")
	assert.Equal(t, "status 402: row limit reached", err.Details)
}

func TestAsGatewayError(t *testing.T) {
	ge := NewMissingTokenError()

	unwrapped, ok := AsGatewayError(fmt.Errorf("handling request: %w", ge))
	require.True(t, ok)
	assert.Equal(t, ge, unwrapped)

	_, ok = AsGatewayError(fmt.Errorf("plain error"))
	assert.False(t, ok)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewMissingBodyError()))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewUpstreamCallError("rento", fmt.Errorf("refused"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("unclassified")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(NewMissingFieldError("x is required")))
	assert.False(t, IsClientError(NewUpstreamError("rento", 500, "")))
	assert.False(t, IsClientError(fmt.Errorf("unclassified")))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CLIENT_INPUT", GetErrorCategory(ErrCodeMissingToken))
	assert.Equal(t, "CLIENT_INPUT", GetErrorCategory(ErrCodeInvalidOperation))
	assert.Equal(t, "UPSTREAM", GetErrorCategory(ErrCodeUpstreamFailure))
	assert.Equal(t, "INTERNAL", GetErrorCategory(ErrCodeInternal))
}
