package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"actlog/internal/auth"
	apperrors "actlog/internal/errors"
	"actlog/internal/model"
	"actlog/internal/repository"
)

// Session is the result of a login or refresh. RefreshToken is empty when
// access tokens do not expire or the token store is unavailable.
type Session struct {
	Token        string
	RefreshToken string
	User         *model.User
}

// AuthService handles signup, login, refresh, logout and token-to-identity resolution.
type AuthService interface {
	Signup(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Authenticate(ctx context.Context, claims *auth.Claims) (*model.User, error)
	BootstrapAdmin(ctx context.Context, username, password string) (created bool, err error)
}

type authService struct {
	userRepo    repository.UserRepository
	userService UserService
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	userService UserService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		userService: userService,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
	}
}

// Signup creates a regular user with a hashed password.
func (s *authService) Signup(ctx context.Context, username, password string) (*model.User, error) {
	return s.createUser(ctx, username, password, false)
}

func (s *authService) createUser(ctx context.Context, username, password string, isAdmin bool) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}
	if len(username) > model.MaxUsernameLength {
		return nil, fmt.Errorf("%w: username exceeds %d bytes", apperrors.ErrFieldTooLong, model.MaxUsernameLength)
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown usernames and
// wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	user, err := s.verifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

// issueSession signs an access token and, when tokens expire, a refresh
// token sharing its jti. Failing to store the refresh token only costs the
// client the ability to refresh.
func (s *authService) issueSession(ctx context.Context, user *model.User) (*Session, error) {
	token, claims, err := s.jwtService.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	session := &Session{Token: token, User: user}
	if !s.jwtService.RefreshEnabled() {
		return session, nil
	}

	refresh, _, err := s.jwtService.IssueRefresh(user.ID, user.Username, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, claims.ID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		log.Warn().Err(err).Str("username", user.Username).Msg("refresh token not stored, issuing access token only")
		return session, nil
	}
	session.RefreshToken = refresh
	return session, nil
}

func (s *authService) verifyCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		// burn the same bcrypt time as a real comparison
		_ = auth.ComparePassword(s.fallbackHash(), password)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return user, nil
}

func (s *authService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("not-a-real-password")
	})
	return s.dummyHash
}

// Refresh exchanges a live refresh token for a new session. The old refresh
// token is consumed and the access token issued with it is revoked.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.jwtService.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, username, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if userID != claims.UserID || username != claims.Username {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userService.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	if user.Username != claims.Username {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSessionStoreUnavailable, err)
	}
	if err := s.tokenStore.RevokeToken(ctx, claims.ID, s.jwtService.TTL()); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSessionStoreUnavailable, err)
	}
	return s.issueSession(ctx, user)
}

// Logout revokes the presented token for the rest of its lifetime and drops
// the refresh token issued with it. A store failure is reported rather than
// claiming a logout that did not happen.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.ErrTokenInvalid
	}
	if err := s.tokenStore.RevokeToken(ctx, claims.ID, s.jwtService.RemainingLifetime(claims)); err != nil {
		log.Warn().Err(err).Str("username", claims.Username).Msg("logout not recorded")
		return fmt.Errorf("%w: %v", apperrors.ErrSessionStoreUnavailable, err)
	}
	if s.jwtService.RefreshEnabled() {
		if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
			log.Warn().Err(err).Str("username", claims.Username).Msg("refresh token not dropped on logout")
			return fmt.Errorf("%w: %v", apperrors.ErrSessionStoreUnavailable, err)
		}
	}
	return nil
}

// Authenticate resolves verified claims to the stored user.
func (s *authService) Authenticate(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	if claims == nil {
		return nil, apperrors.ErrTokenInvalid
	}

	revoked, err := s.tokenStore.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	user, err := s.userService.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnknownIdentity
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	if user.Username != claims.Username {
		s.userService.Invalidate(ctx, claims.UserID)
		return nil, apperrors.ErrUnknownIdentity
	}
	return user, nil
}

// BootstrapAdmin creates the configured admin account once. An existing
// account with that username is left untouched; a warning is logged when it
// is not an admin.
func (s *authService) BootstrapAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.createUser(ctx, username, password, true)
	if errors.Is(err, apperrors.ErrUserAlreadyExists) {
		existing, findErr := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
		if findErr == nil && !existing.IsAdmin {
			log.Warn().Str("username", existing.Username).
				Msg("configured admin username belongs to a non-admin account; it was not promoted")
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
