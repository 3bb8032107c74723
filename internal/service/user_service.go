package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"actlog/internal/cache"
	"actlog/internal/model"
	"actlog/internal/repository"
)

// userCacheTTL bounds how long a deleted or renamed user can still resolve
// from cache. Code that deletes or renames users must call Invalidate.
const userCacheTTL = time.Minute

// UserService looks up users for identity resolution, backed by the cache.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	Invalidate(ctx context.Context, id uint)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser returns the user without its password hash; the cached copy never
// carries it.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// Invalidate drops the cached copy so the next lookup reads the database.
func (s *userService) Invalidate(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, s.cacheKey(id))
}
