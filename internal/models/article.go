package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ArticleStatus is the publication stage of an article.
type ArticleStatus string

const (
	// StatusDraft is the initial state of every new article.
	StatusDraft ArticleStatus = "draft"
	// StatusPending means the article awaits an admin decision.
	StatusPending ArticleStatus = "pending"
	// StatusPublished means the article is publicly visible.
	StatusPublished ArticleStatus = "published"
	// StatusRejected means an admin sent the article back for re-editing.
	StatusRejected ArticleStatus = "rejected"
)

// Editable reports whether content fields may still be changed.
func (s ArticleStatus) Editable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Tags is an ordered list of tag strings stored as a JSON column so the
// same model works on PostgreSQL and the sqlite test driver.
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(value any) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
}

// Article is a piece of writing moving through the editorial lifecycle.
// PublishedAt is non-nil exactly when Status is published, and is never
// changed after the first publish.
type Article struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Slug          string         `gorm:"unique;not null;index" json:"slug"`
	Excerpt       string         `gorm:"type:text" json:"excerpt"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	CoverImageURL string         `json:"cover_image_url"`
	AuthorID      uint           `gorm:"not null;index" json:"author_id"`
	Author        Profile        `gorm:"foreignKey:AuthorID" json:"author"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	Category      Category       `gorm:"foreignKey:CategoryID" json:"category"`
	Tags          Tags           `gorm:"type:text" json:"tags"`
	Status        ArticleStatus  `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ReadTime      int            `gorm:"not null;default:1" json:"read_time"`
	Featured      bool           `gorm:"not null;default:false" json:"featured"`
	PublishedAt   *time.Time     `gorm:"index" json:"published_at"`
	LikesCount    int            `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int            `gorm:"not null;default:0" json:"comments_count"`
	ViewsCount    int            `gorm:"not null;default:0" json:"views_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Liked indicates whether the current requesting user liked this article (computed)
	Liked bool `gorm:"->" json:"liked"`
}
