package service

import (
	"fmt"
	"time"

	"kalem/internal/models"
)

// ArticleView is the transformed article shape handed to the
// presentation layer: author and category flattened, dates and read
// time pre-localized, counters grouped under stats.
type ArticleView struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Excerpt     string       `json:"excerpt"`
	Author      AuthorView   `json:"author"`
	PublishedAt string       `json:"publishedAt,omitempty"`
	ReadTime    string       `json:"readTime"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	Stats       ArticleStats `json:"stats"`
	CoverImage  string       `json:"coverImage,omitempty"`
	Featured    bool         `json:"featured,omitempty"`
	Status      string       `json:"status"`
	Liked       bool         `json:"liked"`
}

// AuthorView is the public author information shown on article cards.
type AuthorView struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// ArticleStats groups the engagement counters.
type ArticleStats struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Views    int `json:"views"`
}

// turkishMonths maps time.Month to the Turkish month name used in the
// localized publish date ("12 Ocak 2026").
var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

func formatPublishedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), turkishMonths[t.Month()-1], t.Year())
}

// TransformArticle converts a stored article into its presentation view model.
func TransformArticle(a *models.Article) ArticleView {
	name := a.Author.DisplayName
	if name == "" {
		name = "Anonim"
	}
	username := a.Author.Username
	if username == "" {
		username = "anonymous"
	}
	category := a.Category.Name
	if category == "" {
		category = "Genel"
	}
	tags := a.Tags
	if tags == nil {
		tags = models.Tags{}
	}

	return ArticleView{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		Author:      AuthorView{Name: name, Username: username, Avatar: a.Author.AvatarURL},
		PublishedAt: formatPublishedAt(a.PublishedAt),
		ReadTime:    fmt.Sprintf("%d dk okuma", a.ReadTime),
		Category:    category,
		Tags:        tags,
		Stats: ArticleStats{
			Likes:    a.LikesCount,
			Comments: a.CommentsCount,
			Views:    a.ViewsCount,
		},
		CoverImage: a.CoverImageURL,
		Featured:   a.Featured,
		Status:     string(a.Status),
		Liked:      a.Liked,
	}
}

// TransformArticles maps a listing into view models.
func TransformArticles(articles []*models.Article) []ArticleView {
	views := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, TransformArticle(a))
	}
	return views
}
