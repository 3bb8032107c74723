package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"actlog/internal/model"
	"actlog/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest is the body of signup and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// RefreshRequest carries a refresh token issued by login or a previous refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// LoginResponse carries the bearer token and, when tokens expire, a refresh token.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"isAdmin"`
}

func newLoginResponse(session *service.Session) LoginResponse {
	return LoginResponse{
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
		Username:     session.User.Username,
		IsAdmin:      session.User.IsAdmin,
	}
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Signup data"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// Login godoc
// @Summary Login and obtain a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newLoginResponse(session))
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Description The presented refresh token is consumed and the access token issued with it is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newLoginResponse(session))
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
