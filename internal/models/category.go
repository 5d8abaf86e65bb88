package models

import "time"

// Category is static reference data used to shelve articles.
// The slug is the URL-safe identifier used by the listing filter.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"unique;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryAll is the sentinel slug meaning "no category filter".
const CategoryAll = "all"
