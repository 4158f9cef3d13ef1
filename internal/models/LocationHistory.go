package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationPoint is one entry of a driver's reported trail. Point holds the
// position as little-endian WKB.
type LocationPoint struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	DriverID  string    `json:"driver_id" gorm:"index;not null"`
	Point     []byte    `json:"-" gorm:"type:bytea"`
	Speed     *float64  `json:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty"`
	Timestamp time.Time `json:"timestamp" gorm:"column:recorded_at;index"`
}

func (p *LocationPoint) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
