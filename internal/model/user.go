package model

import "time"

// MaxUsernameLength matches the username column size.
const MaxUsernameLength = 255

// User represents an account that can sign in and own logs and quick tasks.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsAdmin      bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
}
