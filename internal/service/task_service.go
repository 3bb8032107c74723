package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "actlog/internal/errors"
	"actlog/internal/model"
	"actlog/internal/repository"
)

// QuickTaskService manages a user's quick tasks.
type QuickTaskService interface {
	Add(ctx context.Context, owner *model.User, text string) (*model.QuickTask, error)
	List(ctx context.Context, owner *model.User) ([]model.QuickTask, error)
	Delete(ctx context.Context, requester *model.User, id uint) error
}

type quickTaskService struct {
	repo repository.QuickTaskRepository
}

// NewQuickTaskService creates a new quick task service.
func NewQuickTaskService(repo repository.QuickTaskRepository) QuickTaskService {
	return &quickTaskService{repo: repo}
}

func (s *quickTaskService) Add(ctx context.Context, owner *model.User, text string) (*model.QuickTask, error) {
	if owner == nil {
		return nil, apperrors.ErrUnknownIdentity
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrMissingFields
	}

	task := &model.QuickTask{Username: owner.Username, Task: text}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create quick task: %w", err)
	}
	return task, nil
}

func (s *quickTaskService) List(ctx context.Context, owner *model.User) ([]model.QuickTask, error) {
	if owner == nil {
		return nil, apperrors.ErrUnknownIdentity
	}
	tasks, err := s.repo.ListByUsername(ctx, owner.Username)
	if err != nil {
		return nil, fmt.Errorf("list quick tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes a task owned by requester. A missing task is reported as
// not found, someone else's task as forbidden.
func (s *quickTaskService) Delete(ctx context.Context, requester *model.User, id uint) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("find quick task: %w", err)
	}

	if err := CanDeleteTask(requester, task); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("delete quick task: %w", err)
	}
	return nil
}
