package router

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"actlog/internal/auth"
	apperrors "actlog/internal/errors"
	"actlog/internal/handler"
	"actlog/internal/service"
)

// requestLogger writes one zerolog line per request.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			var evt *zerolog.Event
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Status >= 400:
				evt = log.Warn()
			default:
				evt = log.Info()
			}
			evt.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// bearerAuth extracts the bearer token and verifies it with the JWT service.
// A missing header and an unusable token are reported with distinct errors.
func bearerAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  handler.ClaimsContextKey,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return jwtService.Verify(token)
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrTokenInvalid) {
				return apperrors.ErrTokenInvalid
			}
			return apperrors.ErrTokenMissing
		},
	})
}

// resolveIdentity turns verified claims into the stored user.
func resolveIdentity(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := handler.CurrentClaims(c)
			if err != nil {
				return err
			}
			user, err := authService.Authenticate(c.Request().Context(), claims)
			if err != nil {
				return err
			}
			c.Set(handler.IdentityContextKey, user)
			return next(c)
		}
	}
}

// requireAdmin rejects non-admin identities.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := handler.CurrentUser(c)
		if err != nil {
			return err
		}
		if err := service.RequireAdmin(user); err != nil {
			return err
		}
		return next(c)
	}
}
