package repository

import (
	"context"

	"gorm.io/gorm"

	"actlog/internal/model"
)

// QuickTaskRepository defines quick task persistence operations.
type QuickTaskRepository interface {
	Create(ctx context.Context, task *model.QuickTask) error
	FindByID(ctx context.Context, id uint) (*model.QuickTask, error)
	ListByUsername(ctx context.Context, username string) ([]model.QuickTask, error)
	Delete(ctx context.Context, id uint) error
}

type quickTaskRepository struct {
	db *gorm.DB
}

// NewQuickTaskRepository creates a new quick task repository.
func NewQuickTaskRepository(db *gorm.DB) QuickTaskRepository {
	return &quickTaskRepository{db: db}
}

func (r *quickTaskRepository) Create(ctx context.Context, task *model.QuickTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *quickTaskRepository) FindByID(ctx context.Context, id uint) (*model.QuickTask, error) {
	var task model.QuickTask
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *quickTaskRepository) ListByUsername(ctx context.Context, username string) ([]model.QuickTask, error) {
	tasks := make([]model.QuickTask, 0)
	if err := r.db.WithContext(ctx).Where("username = ?", username).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Delete removes a task by id. Deleting a missing id returns gorm.ErrRecordNotFound.
func (r *quickTaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.QuickTask{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
