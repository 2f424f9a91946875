package models

import "time"

type Session struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
