package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "actlog/internal/errors"
)

// HTTPErrorHandler renders every error as {"error", "code"} JSON using the
// single domain classification in internal/errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var body apperrors.ErrorResponse

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Internal != nil {
			// echo middleware may wrap one of our domain errors
			if mapped := apperrors.MapErrorToHTTP(echoErr.Internal); mapped.StatusCode != http.StatusInternalServerError {
				status, body = mapped.StatusCode, mapped.ToErrorResponse()
			}
		}
		if status == 0 {
			status = echoErr.Code
			body = apperrors.ErrorResponse{
				Error: messageOf(echoErr),
				Code:  codeFor(echoErr.Code),
			}
		}
	} else {
		mapped := apperrors.MapErrorToHTTP(err)
		status, body = mapped.StatusCode, mapped.ToErrorResponse()
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to write error response")
	}
}

func messageOf(e *echo.HTTPError) string {
	if e.Code >= http.StatusInternalServerError {
		return strings.ToLower(http.StatusText(e.Code))
	}
	if msg, ok := e.Message.(string); ok {
		return msg
	}
	return fmt.Sprint(e.Message)
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		if status >= http.StatusInternalServerError {
			return "INTERNAL_ERROR"
		}
		return "REQUEST_FAILED"
	}
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.ErrInvalidBody
	}
	if err := c.Validate(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == "max" {
					return fmt.Errorf("%w: %s", apperrors.ErrFieldTooLong, fe.Field())
				}
			}
		}
		return fmt.Errorf("%w: %v", apperrors.ErrMissingFields, err)
	}
	return nil
}
