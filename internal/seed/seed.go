// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"kalem/internal/models"
	"kalem/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much demo data the seeder generates.
type Options struct {
	Authors  int
	Readers  int
	Articles int
	Clean    bool
}

// DefaultOptions is the standard development dataset.
var DefaultOptions = Options{
	Authors:  5,
	Readers:  20,
	Articles: 40,
	Clean:    true,
}

// defaultCategories is the editorial shelf every fresh database starts with.
var defaultCategories = []models.Category{
	{Name: "Teknoloji", Slug: "teknoloji"},
	{Name: "Ekonomi", Slug: "ekonomi"},
	{Name: "Kültür", Slug: "kültür"},
	{Name: "Bilim", Slug: "bilim"},
	{Name: "Yaşam", Slug: "yaşam"},
}

// Categories inserts the default category set, skipping slugs that
// already exist so the call stays idempotent.
func Categories(db *gorm.DB) error {
	for _, c := range defaultCategories {
		category := c
		err := db.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error
		if err != nil {
			return fmt.Errorf("seed category %s: %w", category.Slug, err)
		}
	}
	return nil
}

// Seed populates the database with demo accounts and articles. Every
// seeded account shares the password printed by cmd/seed.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.Clean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}

	if err := Categories(db); err != nil {
		return err
	}
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return err
	}

	f := NewFactory(db)

	admin, err := f.CreateUser(models.RoleAdmin, func(u *models.User) {
		u.Email = "editor@kalem.dev"
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Printf("admin: %s", admin.Email)

	authors := make([]*models.User, 0, opts.Authors)
	for i := 0; i < opts.Authors; i++ {
		author, err := f.CreateUser(models.RoleAuthor)
		if err != nil {
			return fmt.Errorf("seed author: %w", err)
		}
		authors = append(authors, author)
	}

	readers := make([]*models.User, 0, opts.Readers)
	for i := 0; i < opts.Readers; i++ {
		reader, err := f.CreateUser(models.RoleReader)
		if err != nil {
			return fmt.Errorf("seed reader: %w", err)
		}
		readers = append(readers, reader)
	}

	statuses := []models.ArticleStatus{
		models.StatusPublished, models.StatusPublished, models.StatusPublished,
		models.StatusDraft, models.StatusPending, models.StatusRejected,
	}
	for i := 0; i < opts.Articles; i++ {
		author := authors[rand.Intn(len(authors))]
		category := categories[rand.Intn(len(categories))]
		status := statuses[rand.Intn(len(statuses))]

		article, err := f.CreateArticle(author, &category, status)
		if err != nil {
			return fmt.Errorf("seed article: %w", err)
		}

		if status == models.StatusPublished {
			for _, reader := range readers {
				if rand.Intn(4) != 0 {
					continue
				}
				if err := f.CreateLike(reader, article); err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
		}
	}

	return nil
}

func clearData(db *gorm.DB) error {
	for _, table := range []string{"likes", "articles", "categories", "user_roles", "profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// articleTitle produces a Turkish-flavored headline that still slugs cleanly.
func articleTitle() string {
	subjects := []string{
		"Go ile Web Geliştirme", "Dağıtık Sistemlerde Tutarlılık", "Yapay Zeka ve Etik",
		"Mikroservis Mimarisi", "Açık Kaynak Ekonomisi", "Dijital Okuryazarlık",
		"Veri Gizliliği", "Bulut Maliyetleri", "Yazılımda Ustalaşma", "Modern Editörlük",
	}
	return fmt.Sprintf("%s: %s", subjects[rand.Intn(len(subjects))], gofakeit.HipsterSentence(3))
}

func articleContent() string {
	return gofakeit.Paragraph(4, 6, 12, "\n\n")
}

// Slug derives the stored slug for seeded titles using the same rules as
// article creation, with a random suffix instead of a store lookup.
func seededSlug(title string) string {
	return fmt.Sprintf("%s-%d", service.Slugify(title), gofakeit.Number(1000, 9999))
}
