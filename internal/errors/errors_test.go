package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"missing fields", ErrMissingFields, http.StatusBadRequest, "MISSING_FIELDS", "missing required fields"},
		{"wrapped timestamp", fmt.Errorf("parse: %w", ErrInvalidTimestamp), http.StatusBadRequest, "INVALID_TIMESTAMP", "invalid timestamp"},
		{"missing token", ErrTokenMissing, http.StatusUnauthorized, "TOKEN_MISSING", "missing bearer token"},
		{"invalid token", fmt.Errorf("%w: signature is invalid", ErrTokenInvalid), http.StatusUnauthorized, "TOKEN_INVALID", "invalid or expired token"},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN", "access denied"},
		{"task missing", ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND", "quick task not found"},
		{"conflict", ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS", "username already exists"},
		{"too long", fmt.Errorf("%w: password exceeds 72 bytes", ErrFieldTooLong), http.StatusBadRequest, "FIELD_TOO_LONG", "field exceeds maximum length"},
		{"refresh token", ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "invalid refresh token"},
		{"session store down", fmt.Errorf("%w: dial tcp", ErrSessionStoreUnavailable), http.StatusServiceUnavailable, "SESSION_STORE_UNAVAILABLE", "session store unavailable"},
		{"unknown", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestMapErrorToHTTP_PassesThroughHTTPError(t *testing.T) {
	original := NewHTTPError(http.StatusTeapot, "short and stout", "TEAPOT")
	got := MapErrorToHTTP(fmt.Errorf("brew: %w", original))
	assert.Same(t, original, got)
	assert.Equal(t, ErrorResponse{Error: "short and stout", Code: "TEAPOT"}, got.ToErrorResponse())
}
