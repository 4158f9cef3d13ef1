package models

import "time"

// VerificationCode is the pending one-time code for a phone number. Only the
// bcrypt hash is stored; a new request replaces the previous code.
type VerificationCode struct {
	Phone     string    `gorm:"primaryKey"`
	CodeHash  string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
