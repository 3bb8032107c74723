package model

import "time"

// MaxDeviceIDLength matches the device_id column size.
const MaxDeviceIDLength = 255

// LogEntry is a single recorded activity. Entries are append-only.
type LogEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:255;not null;index:idx_logs_owner_ts,priority:1"`
	DeviceID  string    `json:"deviceId,omitempty" gorm:"size:255;index"`
	Activity  string    `json:"activity" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index:idx_logs_owner_ts,priority:2"`
}

// TableName keeps the table name used by existing deployments.
func (LogEntry) TableName() string {
	return "logs"
}
