package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a verified member of the marketplace. Accounts are
// restricted to the institutional email domain at signup time.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UID          string    `gorm:"uniqueIndex;not null" json:"uid"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BeforeCreate is a GORM hook that assigns a stable external UID
// if one has not been set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.UID == "" {
		u.UID = uuid.New().String()
	}
	return
}
