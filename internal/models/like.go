package models

import "time"

// Like records that a user liked an article.
// The combination of UserID and ArticleID must be unique, so a user
// holds at most one like per article. Unliking hard-deletes the row.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_user_article" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"user"`
	Article Article `gorm:"foreignKey:ArticleID" json:"article"`
}
