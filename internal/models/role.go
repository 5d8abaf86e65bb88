package models

import "time"

// Role is the coarse permission level of a user.
type Role string

const (
	// RoleReader may browse and like published articles.
	RoleReader Role = "reader"
	// RoleAuthor may additionally write and submit articles.
	RoleAuthor Role = "author"
	// RoleAdmin may additionally publish or reject pending articles.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

// UserRole assigns a role to a user. Every user gets exactly one row,
// defaulting to reader at signup. Elevation happens out of band.
type UserRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'reader'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (UserRole) TableName() string {
	return "user_roles"
}
