package models

import "time"

type Roadmap struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"uniqueIndex;not null" json:"project_id"`
	Data      JSONDoc   `gorm:"type:json" json:"roadmap_data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
