package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "actlog/internal/errors"
)

// RefreshTokenExpiry is the lifetime of a refresh token.
const RefreshTokenExpiry = 7 * 24 * time.Hour

const tokenTypeRefresh = "refresh"

var errWrongTokenType = errors.New("wrong token type")

// Claims represents JWT claims. Both the user id and the username are bound
// so the middleware can detect a recycled id. A refresh token carries the
// jti of the access token it was issued with.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a new JWT service. A zero ttl issues tokens without
// an exp claim and disables refresh tokens.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// RefreshEnabled reports whether access tokens expire and therefore get a
// refresh token.
func (s *JWTService) RefreshEnabled() bool {
	return s.ttl > 0
}

// Issue signs an access token for the given identity.
func (s *JWTService) Issue(userID uint, username string) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return s.sign(claims)
}

// IssueRefresh signs a refresh token bound to the access token id tokenID.
func (s *JWTService) IssueRefresh(userID uint, username, tokenID string) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenExpiry)),
		},
	}
	return s.sign(claims)
}

func (s *JWTService) sign(claims *Claims) (string, *Claims, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// Verify validates an access token and returns its claims. An empty token
// yields ErrTokenMissing; every other failure, including a refresh token
// presented as a bearer token, wraps ErrTokenInvalid.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenMissing
	}
	claims, err := s.parse(tokenString)
	if err == nil && claims.TokenType != "" {
		err = errWrongTokenType
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token. Every failure wraps
// ErrInvalidRefreshToken.
func (s *JWTService) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err == nil && claims.TokenType != tokenTypeRefresh {
		err = errWrongTokenType
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRefreshToken, err)
	}
	return claims, nil
}

func (s *JWTService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token not valid")
	}
	if claims.UserID == 0 || claims.Username == "" || claims.ID == "" {
		return nil, errors.New("incomplete claims")
	}
	return claims, nil
}

// RemainingLifetime returns how long the token stays valid; zero means it
// never expires.
func (s *JWTService) RemainingLifetime(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	left := claims.ExpiresAt.Time.Sub(s.now())
	if left <= 0 {
		// already expired, keep the marker briefly rather than forever
		return time.Second
	}
	return left
}

// TTL returns the configured access token lifetime.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}
