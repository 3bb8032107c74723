package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"actlog/docs"
	"actlog/internal/auth"
	"actlog/internal/config"
	"actlog/internal/handler"
	"actlog/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	logHandler *handler.LogHandler,
	taskHandler *handler.QuickTaskHandler,
) {
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: cfg.RequestTimeout,
	}))

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// Secured routes. A root-level group would catch unmatched paths, so
	// middleware is attached per route.
	secured := []echo.MiddlewareFunc{bearerAuth(jwtService), resolveIdentity(authService)}
	adminOnly := append(append([]echo.MiddlewareFunc{}, secured...), requireAdmin)

	e.POST("/auth/logout", authHandler.Logout, secured...)
	e.GET("/me", userHandler.Me, secured...)

	e.POST("/logs", logHandler.Create, secured...)
	e.GET("/logs/user/:username", logHandler.ListByUser, secured...)
	e.GET("/logs/device/:deviceId", logHandler.ListByDevice, secured...)

	e.GET("/quick-tasks", taskHandler.List, secured...)
	e.POST("/quick-tasks", taskHandler.Create, secured...)
	e.DELETE("/quick-tasks/:id", taskHandler.Delete, secured...)

	e.GET("/admin/logs", logHandler.ListAll, adminOnly...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
