package handler

import (
	"github.com/labstack/echo/v4"

	"actlog/internal/auth"
	apperrors "actlog/internal/errors"
	"actlog/internal/model"
)

const (
	// ClaimsContextKey holds the verified *auth.Claims.
	ClaimsContextKey = "claims"
	// IdentityContextKey holds the resolved *model.User.
	IdentityContextKey = "identity"
)

// CurrentUser returns the identity attached by the authentication middleware.
func CurrentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(IdentityContextKey).(*model.User)
	if !ok || user == nil {
		return nil, apperrors.ErrUnknownIdentity
	}
	return user, nil
}

// CurrentClaims returns the verified token claims.
func CurrentClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, apperrors.ErrTokenMissing
	}
	return claims, nil
}

// MessageResponse is the body of simple success responses.
type MessageResponse struct {
	Message string `json:"message"`
}
