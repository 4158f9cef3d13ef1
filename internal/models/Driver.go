// internal/models/driver.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationFix is a single position report. Only the most recent one is kept
// on the driver; the full trail lives in LocationPoint rows.
type LocationFix struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Speed     *float64  `json:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Driver struct {
	ID             string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string       `json:"name" gorm:"not null"`
	Phone          string       `json:"phone" gorm:"index"`
	Vehicle        Vehicle      `json:"vehicle" gorm:"embedded;embeddedPrefix:vehicle_"`
	Online         bool         `json:"online" gorm:"not null;default:false"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	LatestLocation *LocationFix `json:"latest_location" gorm:"serializer:json;type:text"`
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
