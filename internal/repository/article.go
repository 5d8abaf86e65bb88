// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kalem/internal/cache"
	"kalem/internal/models"
	"kalem/internal/observability"

	"gorm.io/gorm"
)

// ArticleQuery is the typed query parameter set for article listings.
// It replaces a chained query-builder DSL with an explicit struct.
type ArticleQuery struct {
	Status     models.ArticleStatus
	CategoryID *uint
	OrderBy    string // defaults to "published_at DESC, id ASC"
	Limit      int
	Offset     int
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Article, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Article, error)
	List(ctx context.Context, q ArticleQuery, currentUserID uint) ([]*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	EnsureUniqueSlug(ctx context.Context, base string) (string, error)
	IsLiked(ctx context.Context, userID, articleID uint) (bool, error)
	ToggleLike(ctx context.Context, userID, articleID uint) (liked bool, err error)
	IncrementViews(ctx context.Context, articleID uint) error
}

// articleRepository implements ArticleRepository
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// applyLiked annotates each row with whether the current user liked it.
func (r *articleRepository) applyLiked(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("articles.*, EXISTS(SELECT 1 FROM likes WHERE likes.article_id = articles.id AND likes.user_id = ?) AS liked", currentUserID)
	}
	return db.Select("articles.*, FALSE AS liked")
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	defer observability.TrackQuery("create", "articles")()
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return err
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error) {
	defer observability.TrackQuery("get", "articles")()
	var article models.Article
	err := r.applyLiked(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Category").
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Article, error) {
	defer observability.TrackQuery("get", "articles")()
	var article models.Article
	err := r.applyLiked(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Category").
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Article, error) {
	defer observability.TrackQuery("list", "articles")()
	var articles []*models.Article
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) List(ctx context.Context, q ArticleQuery, currentUserID uint) ([]*models.Article, error) {
	defer observability.TrackQuery("list", "articles")()
	var articles []*models.Article

	db := r.applyLiked(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Category")

	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.CategoryID != nil {
		db = db.Where("category_id = ?", *q.CategoryID)
	}

	orderBy := q.OrderBy
	if orderBy == "" {
		// Deterministic listing order: newest first, id as tie-break.
		orderBy = "published_at DESC, id ASC"
	}
	db = db.Order(orderBy)

	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	err := db.Find(&articles).Error
	return articles, err
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	defer observability.TrackQuery("update", "articles")()
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}

// EnsureUniqueSlug returns base if unused, otherwise the base with the
// lowest free numeric suffix appended ("baslik", "baslik-2", "baslik-3", ...).
func (r *articleRepository) EnsureUniqueSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&models.Article{}).
			Where("slug = ?", candidate).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (r *articleRepository) IsLiked(ctx context.Context, userID, articleID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleLike inserts or deletes the (user, article) like row depending on
// current presence and adjusts the denormalized likes_count by the number
// of rows actually changed, all inside one transaction. The unique index
// on (user_id, article_id) plus ON CONFLICT DO NOTHING makes concurrent
// toggles race-safe: the count always converges to the number of Like rows.
func (r *articleRepository) ToggleLike(ctx context.Context, userID, articleID uint) (bool, error) {
	defer observability.TrackQuery("toggle_like", "likes")()

	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Like{}).
			Where("user_id = ? AND article_id = ?", userID, articleID).
			Count(&count).Error; err != nil {
			return err
		}

		var delta int64
		if count == 0 {
			res := tx.Exec(
				`INSERT INTO likes (user_id, article_id, created_at)
				 VALUES (?, ?, ?)
				 ON CONFLICT (user_id, article_id) DO NOTHING`,
				userID, articleID, time.Now(),
			)
			if res.Error != nil {
				return res.Error
			}
			delta = res.RowsAffected
			liked = true
		} else {
			res := tx.Where("user_id = ? AND article_id = ?", userID, articleID).
				Delete(&models.Like{})
			if res.Error != nil {
				return res.Error
			}
			delta = -res.RowsAffected
			liked = false
		}

		if delta == 0 {
			return nil
		}
		return tx.Model(&models.Article{}).
			Where("id = ?", articleID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
	})
	if err != nil {
		return false, err
	}

	cache.InvalidateArticle(ctx, articleID)
	return liked, nil
}

func (r *articleRepository) IncrementViews(ctx context.Context, articleID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", articleID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
