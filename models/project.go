package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// JSONDoc stores an opaque JSON document in a text column while keeping it
// raw on the Go side, so payloads round-trip without re-encoding.
type JSONDoc json.RawMessage

func (d *JSONDoc) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*d = append((*d)[:0], v...)
	case string:
		*d = JSONDoc(v)
	default:
		return errors.New(fmt.Sprint("failed to scan JSON value:", value))
	}
	return nil
}

func (d JSONDoc) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "{}", nil
	}
	return string(d), nil
}

func (d JSONDoc) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("{}"), nil
	}
	return d, nil
}

func (d *JSONDoc) UnmarshalJSON(data []byte) error {
	*d = append((*d)[:0], data...)
	return nil
}

type Project struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	OwnerID   string    `gorm:"index;not null" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Collaborator struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	UserID    string    `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
