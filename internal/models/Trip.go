package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Trip struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	DriverID   string    `json:"driver_id" gorm:"index;not null"`
	Fare       float64   `json:"fare"`
	ServiceFee float64   `json:"service_fee"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// EarningsSummary is computed per request for a [Start, End) window and never stored.
type EarningsSummary struct {
	DriverID         string    `json:"driver_id"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	TripCount        int       `json:"trip_count"`
	TotalFares       float64   `json:"total_fares"`
	TotalServiceFees float64   `json:"total_service_fees"`
	NetAmount        float64   `json:"net_amount"`
	Trips            []Trip    `json:"trips"`
}
