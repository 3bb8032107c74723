package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"actlog/internal/cache"
)

const (
	revokedTokenKeyPrefix = "revoked_token:"
	refreshTokenKeyPrefix = "refresh_token:"
)

// ErrRefreshTokenNotFound is returned when no refresh token is stored for an id.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uint, username string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore keeps revoked token ids and live refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

type refreshTokenData struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// RevokeToken marks a token id as revoked. A zero ttl keeps the marker
// indefinitely, which is what non-expiring tokens need. Redis failures are
// returned so the caller does not report a logout that did not happen.
func (s *TokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked checks the revocation marker. An unreachable Redis reads as
// not revoked.
func (s *TokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// StoreRefreshToken records a live refresh token with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	payload, err := json.Marshal(refreshTokenData{UserID: userID, Username: username})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	if err := s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken returns the identity a refresh token was issued to.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil {
		return 0, "", err
	}
	if data == nil {
		return 0, "", ErrRefreshTokenNotFound
	}

	var stored refreshTokenData
	if err := json.Unmarshal(data, &stored); err != nil {
		return 0, "", fmt.Errorf("unmarshal token data: %w", err)
	}
	return stored.UserID, stored.Username, nil
}

// DeleteRefreshToken removes a refresh token.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	if err := s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
