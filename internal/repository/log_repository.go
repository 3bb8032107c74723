package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"actlog/internal/model"
)

// LogFilter narrows a log listing. Empty fields do not filter.
type LogFilter struct {
	Username string
	DeviceID string
	Limit    int
	Offset   int
}

// LogRepository defines activity log persistence operations.
type LogRepository interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateBatch(ctx context.Context, entries []model.LogEntry) error
	List(ctx context.Context, filter LogFilter) ([]model.LogEntry, error)
}

type logRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new log repository.
func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

// Create appends a log entry.
func (r *logRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch appends multiple entries in batches of 100.
func (r *logRepository) CreateBatch(ctx context.Context, entries []model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(entries, 100).Error
}

// List returns entries newest first. Ties on timestamp are broken by id so
// repeated reads return the same order.
func (r *logRepository) List(ctx context.Context, filter LogFilter) ([]model.LogEntry, error) {
	q := r.db.WithContext(ctx).Model(&model.LogEntry{})
	if filter.Username != "" {
		q = q.Where("username = ?", filter.Username)
	}
	if filter.DeviceID != "" {
		q = q.Where("device_id = ?", filter.DeviceID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	entries := make([]model.LogEntry, 0)
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
