package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"kalem/internal/models"
	"kalem/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the password shared by every seeded account.
const SeedPassword = "Kalem-dev-2026!"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db           *gorm.DB
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB. The
// shared password is hashed once so large seeds stay fast.
func NewFactory(db *gorm.DB) *Factory {
	hash, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	return &Factory{db: db, passwordHash: string(hash)}
}

// CreateUser persists a user with profile and the given role. Optional
// override functions may modify the generated user before saving.
func (f *Factory) CreateUser(role models.Role, overrides ...func(*models.User)) (*models.User, error) {
	username := strings.ToLower(gofakeit.Username())
	if len(username) < 3 {
		username += gofakeit.LetterN(3)
	}
	username = fmt.Sprintf("%s%d", username, gofakeit.Number(10, 99))

	user := &models.User{
		Email:    gofakeit.Email(),
		Password: f.passwordHash,
	}
	for _, override := range overrides {
		override(user)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			UserID:      user.ID,
			Username:    username,
			DisplayName: gofakeit.Name(),
			AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		userRole := &models.UserRole{UserID: user.ID, Role: role}
		if err := tx.Create(userRole).Error; err != nil {
			return err
		}
		user.Profile = profile
		user.Role = userRole
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateArticle persists an article for the author in the given status,
// with derived excerpt and read time and a realistic created_at spread.
func (f *Factory) CreateArticle(author *models.User, category *models.Category, status models.ArticleStatus, overrides ...func(*models.Article)) (*models.Article, error) {
	title := articleTitle()
	content := articleContent()

	article := &models.Article{
		Title:      title,
		Slug:       seededSlug(title),
		Excerpt:    service.DeriveExcerpt("", content),
		Content:    content,
		AuthorID:   author.Profile.ID,
		CategoryID: category.ID,
		Tags:       models.Tags{gofakeit.HipsterWord(), gofakeit.HipsterWord()},
		Status:     status,
		ReadTime:   service.ComputeReadTime(content),
		Featured:   rand.Intn(10) == 0,
	}
	article.CreatedAt = time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour)

	if status == models.StatusPublished {
		publishedAt := article.CreatedAt.Add(time.Duration(1+rand.Intn(72)) * time.Hour)
		article.PublishedAt = &publishedAt
	}

	for _, override := range overrides {
		override(article)
	}

	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// CreateLike inserts a like row and bumps the denormalized counter.
func (f *Factory) CreateLike(user *models.User, article *models.Article) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		like := &models.Like{UserID: user.ID, ArticleID: article.ID}
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Article{}).
			Where("id = ?", article.ID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
}
