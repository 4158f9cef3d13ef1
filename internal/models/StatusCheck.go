package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusCheck struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ClientName string    `json:"client_name" gorm:"not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"column:checked_at"`
}

func (s *StatusCheck) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now().UTC()
	}
	return nil
}
