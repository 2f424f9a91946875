package models

import "time"

type Idea struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	ProjectID   string    `gorm:"index;not null" json:"project_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	X           float64   `gorm:"not null" json:"x"`
	Y           float64   `gorm:"not null" json:"y"`
	Quadrant    string    `gorm:"not null" json:"quadrant"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
