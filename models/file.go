package models

import "time"

const (
	AnalysisPending = "pending"
	AnalysisDone    = "done"
	AnalysisFailed  = "failed"
)

type ProjectFile struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	ProjectID      string    `gorm:"index;not null" json:"project_id"`
	Name           string    `gorm:"not null" json:"name"`
	StoragePath    string    `gorm:"not null" json:"-"`
	Size           int64     `json:"size"`
	ContentType    string    `json:"content_type"`
	Checksum       string    `json:"checksum"`
	AnalysisStatus string    `gorm:"not null" json:"analysis_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
