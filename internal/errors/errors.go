package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidBody is returned when a request body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrMissingFields is returned when required fields are absent or blank.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidTimestamp is returned when a client supplied timestamp is not RFC 3339.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrInvalidPagination is returned for malformed limit/offset values.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
	// ErrInvalidID is returned when a path id is not a positive integer.
	ErrInvalidID = errors.New("invalid id")
	// ErrFieldTooLong is returned when a value exceeds what can be stored or hashed.
	ErrFieldTooLong = errors.New("field exceeds maximum length")

	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenMissing is returned when a protected route is called without a bearer token.
	ErrTokenMissing = errors.New("missing bearer token")
	// ErrTokenInvalid is returned for malformed, tampered or expired tokens.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrTokenRevoked is returned for tokens invalidated by logout.
	ErrTokenRevoked = errors.New("token has been revoked")
	// ErrInvalidRefreshToken is returned for refresh tokens that are malformed, expired, rotated or logged out.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrUnknownIdentity is returned when a valid token references a user that no longer exists.
	ErrUnknownIdentity = errors.New("token identity no longer exists")

	// ErrForbidden is returned when the caller is authenticated but not permitted.
	ErrForbidden = errors.New("access denied")
	// ErrTaskNotFound is returned when a quick task does not exist.
	ErrTaskNotFound = errors.New("quick task not found")
	// ErrUserAlreadyExists is returned when a username is already taken.
	ErrUserAlreadyExists = errors.New("username already exists")

	// ErrSessionStoreUnavailable is returned when a logout or refresh cannot be recorded.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var classification = []struct {
	err    error
	status int
	code   string
}{
	{ErrInvalidBody, http.StatusBadRequest, "INVALID_BODY"},
	{ErrMissingFields, http.StatusBadRequest, "MISSING_FIELDS"},
	{ErrInvalidTimestamp, http.StatusBadRequest, "INVALID_TIMESTAMP"},
	{ErrInvalidPagination, http.StatusBadRequest, "INVALID_PAGINATION"},
	{ErrInvalidID, http.StatusBadRequest, "INVALID_ID"},
	{ErrFieldTooLong, http.StatusBadRequest, "FIELD_TOO_LONG"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrTokenMissing, http.StatusUnauthorized, "TOKEN_MISSING"},
	{ErrTokenInvalid, http.StatusUnauthorized, "TOKEN_INVALID"},
	{ErrTokenRevoked, http.StatusUnauthorized, "TOKEN_REVOKED"},
	{ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
	{ErrUnknownIdentity, http.StatusUnauthorized, "UNKNOWN_IDENTITY"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
	{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
	{ErrSessionStoreUnavailable, http.StatusServiceUnavailable, "SESSION_STORE_UNAVAILABLE"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// reported as an internal error without exposing its message.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	for _, c := range classification {
		if errors.Is(err, c.err) {
			return NewHTTPError(c.status, c.err.Error(), c.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
