package model

import "time"

// QuickTask is a short to-do item visible only to its owner.
type QuickTask struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:255;not null;index"`
	Task      string    `json:"task" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
