// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account known to the identity layer. Editorial data
// (display name, avatar) lives on the associated Profile.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Role    *UserRole `gorm:"foreignKey:UserID" json:"role,omitempty"`
}
