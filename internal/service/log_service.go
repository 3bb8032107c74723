package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "actlog/internal/errors"
	"actlog/internal/model"
	"actlog/internal/repository"
)

const (
	// DefaultPageLimit applies when a listing does not specify a limit.
	DefaultPageLimit = 100
	// MaxPageLimit caps a single listing.
	MaxPageLimit = 1000
)

// Page selects a window of a listing.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() (Page, error) {
	if p.Limit < 0 || p.Offset < 0 {
		return Page{}, apperrors.ErrInvalidPagination
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p, nil
}

// AppendLogInput is a log submission. Timestamp is optional RFC 3339.
type AppendLogInput struct {
	Activity  string
	DeviceID  string
	Timestamp string
}

// LogService records and lists activity logs, applying the read policy.
type LogService interface {
	Append(ctx context.Context, owner *model.User, in AppendLogInput) (*model.LogEntry, error)
	ListUserLogs(ctx context.Context, identity *model.User, username, deviceID string, page Page) ([]model.LogEntry, error)
	ListDeviceLogs(ctx context.Context, identity *model.User, deviceID string, page Page) ([]model.LogEntry, error)
	ListAllLogs(ctx context.Context, identity *model.User, deviceID string, page Page) ([]model.LogEntry, error)
	Import(ctx context.Context, entries []model.LogEntry) error
}

type logService struct {
	repo repository.LogRepository
	now  func() time.Time
}

// NewLogService creates a new log service.
func NewLogService(repo repository.LogRepository) LogService {
	return &logService{repo: repo, now: time.Now}
}

// Append stores a new entry owned by the caller.
func (s *logService) Append(ctx context.Context, owner *model.User, in AppendLogInput) (*model.LogEntry, error) {
	if owner == nil {
		return nil, apperrors.ErrUnknownIdentity
	}
	activity := strings.TrimSpace(in.Activity)
	if activity == "" {
		return nil, apperrors.ErrMissingFields
	}

	deviceID := strings.TrimSpace(in.DeviceID)
	if len(deviceID) > model.MaxDeviceIDLength {
		return nil, fmt.Errorf("%w: deviceId exceeds %d bytes", apperrors.ErrFieldTooLong, model.MaxDeviceIDLength)
	}

	ts, err := s.timestamp(in.Timestamp)
	if err != nil {
		return nil, err
	}

	entry := &model.LogEntry{
		Username:  owner.Username,
		DeviceID:  deviceID,
		Activity:  activity,
		Timestamp: ts,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create log entry: %w", err)
	}
	return entry, nil
}

func (s *logService) timestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.now().UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimestamp, raw)
	}
	return ts.UTC(), nil
}

// ListUserLogs lists one user's entries. Admins may read any user.
func (s *logService) ListUserLogs(ctx context.Context, identity *model.User, username, deviceID string, page Page) ([]model.LogEntry, error) {
	if err := CanReadUserLogs(identity, username); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.LogFilter{Username: username, DeviceID: deviceID}, page)
}

// ListDeviceLogs lists entries for a device; non-admins only see their own.
func (s *logService) ListDeviceLogs(ctx context.Context, identity *model.User, deviceID string, page Page) ([]model.LogEntry, error) {
	if identity == nil {
		return nil, apperrors.ErrForbidden
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, apperrors.ErrMissingFields
	}
	return s.list(ctx, repository.LogFilter{Username: deviceLogOwnerScope(identity), DeviceID: deviceID}, page)
}

// ListAllLogs lists every user's entries. Admin only.
func (s *logService) ListAllLogs(ctx context.Context, identity *model.User, deviceID string, page Page) ([]model.LogEntry, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.LogFilter{DeviceID: deviceID}, page)
}

func (s *logService) list(ctx context.Context, filter repository.LogFilter, page Page) ([]model.LogEntry, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = page.Limit, page.Offset

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return entries, nil
}

// Import bulk-appends pre-built entries; used by the seed command.
func (s *logService) Import(ctx context.Context, entries []model.LogEntry) error {
	for i := range entries {
		if entries[i].Username == "" || strings.TrimSpace(entries[i].Activity) == "" {
			return fmt.Errorf("entry %d: %w", i, apperrors.ErrMissingFields)
		}
		if entries[i].Timestamp.IsZero() {
			entries[i].Timestamp = s.now().UTC()
		}
	}
	if err := s.repo.CreateBatch(ctx, entries); err != nil {
		return fmt.Errorf("import logs: %w", err)
	}
	return nil
}
