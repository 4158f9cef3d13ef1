package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserTypeRider  = "rider"
	UserTypeDriver = "driver"

	LanguageEnglish = "en"
	LanguageAmharic = "am"
)

// Profile holds the optional display details of a user.
type Profile struct {
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Phone     string    `json:"phone" gorm:"uniqueIndex;not null"`
	UserType  string    `json:"userType" gorm:"not null"` // "rider", "driver"
	Language  string    `json:"language" gorm:"not null;default:en"`
	Profile   *Profile  `json:"profile,omitempty" gorm:"serializer:json;type:text"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ValidUserType reports whether t is a user type the app knows about.
func ValidUserType(t string) bool {
	return t == UserTypeRider || t == UserTypeDriver
}

// ValidLanguage reports whether code is a supported UI language.
func ValidLanguage(code string) bool {
	return code == LanguageEnglish || code == LanguageAmharic
}
