package repository

import (
	"context"
	"testing"
	"time"

	"kalem/internal/database"
	"kalem/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateAll(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func seedAuthor(t *testing.T, db *gorm.DB, username string) *models.Profile {
	t.Helper()
	user := &models.User{Email: username + "@kalem.dev", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	profile := &models.Profile{UserID: user.ID, Username: username, DisplayName: username}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func seedPublished(t *testing.T, db *gorm.DB, authorID, categoryID uint, slug string, publishedAt time.Time) *models.Article {
	t.Helper()
	article := &models.Article{
		Title:       slug,
		Slug:        slug,
		Content:     "içerik",
		AuthorID:    authorID,
		CategoryID:  categoryID,
		Status:      models.StatusPublished,
		ReadTime:    1,
		PublishedAt: &publishedAt,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}

func TestArticleRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db, "yazar")
	teknoloji := &models.Category{Name: "Teknoloji", Slug: "teknoloji"}
	ekonomi := &models.Category{Name: "Ekonomi", Slug: "ekonomi"}
	require.NoError(t, db.Create(teknoloji).Error)
	require.NoError(t, db.Create(ekonomi).Error)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := seedPublished(t, db, author.ID, teknoloji.ID, "eski-yazı", base.Add(-48*time.Hour))
	newer := seedPublished(t, db, author.ID, teknoloji.ID, "yeni-yazı", base)
	other := seedPublished(t, db, author.ID, ekonomi.ID, "ekonomi-yazısı", base.Add(-24*time.Hour))
	// Same publish instant as newer: the id breaks the tie.
	twin := seedPublished(t, db, author.ID, teknoloji.ID, "ikiz-yazı", base)

	draft := &models.Article{
		Title: "taslak", Slug: "taslak", Content: "x",
		AuthorID: author.ID, CategoryID: teknoloji.ID, Status: models.StatusDraft,
	}
	require.NoError(t, db.Create(draft).Error)

	t.Run("published only, newest first, id as tie-break", func(t *testing.T) {
		articles, err := repo.List(ctx, ArticleQuery{Status: models.StatusPublished, Limit: 10}, 0)
		require.NoError(t, err)
		require.Len(t, articles, 4)
		assert.Equal(t, newer.ID, articles[0].ID)
		assert.Equal(t, twin.ID, articles[1].ID)
		assert.Equal(t, other.ID, articles[2].ID)
		assert.Equal(t, old.ID, articles[3].ID)
	})

	t.Run("category filter", func(t *testing.T) {
		articles, err := repo.List(ctx, ArticleQuery{
			Status: models.StatusPublished, CategoryID: &ekonomi.ID, Limit: 10,
		}, 0)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "ekonomi-yazısı", articles[0].Slug)
		assert.Equal(t, "Ekonomi", articles[0].Category.Name)
	})

	t.Run("identical query returns identical order", func(t *testing.T) {
		q := ArticleQuery{Status: models.StatusPublished, Limit: 10}
		first, err := repo.List(ctx, q, 0)
		require.NoError(t, err)
		second, err := repo.List(ctx, q, 0)
		require.NoError(t, err)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
		}
	})

	t.Run("pagination window", func(t *testing.T) {
		articles, err := repo.List(ctx, ArticleQuery{
			Status: models.StatusPublished, Limit: 2, Offset: 2,
		}, 0)
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, other.ID, articles[0].ID)
	})
}

func TestEnsureUniqueSlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db, "yazar")
	category := &models.Category{Name: "Teknoloji", Slug: "teknoloji"}
	require.NoError(t, db.Create(category).Error)

	slug, err := repo.EnsureUniqueSlug(ctx, "go-notları")
	require.NoError(t, err)
	assert.Equal(t, "go-notları", slug)

	seedPublished(t, db, author.ID, category.ID, "go-notları", time.Now())
	slug, err = repo.EnsureUniqueSlug(ctx, "go-notları")
	require.NoError(t, err)
	assert.Equal(t, "go-notları-2", slug)

	seedPublished(t, db, author.ID, category.ID, "go-notları-2", time.Now())
	slug, err = repo.EnsureUniqueSlug(ctx, "go-notları")
	require.NoError(t, err)
	assert.Equal(t, "go-notları-3", slug)
}

func TestToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db, "yazar")
	reader := &models.User{Email: "okur@kalem.dev", Password: "x"}
	require.NoError(t, db.Create(reader).Error)
	category := &models.Category{Name: "Teknoloji", Slug: "teknoloji"}
	require.NoError(t, db.Create(category).Error)
	article := seedPublished(t, db, author.ID, category.ID, "beğeni-testi", time.Now())

	likesCount := func() int {
		var a models.Article
		require.NoError(t, db.First(&a, article.ID).Error)
		return a.LikesCount
	}
	likeRows := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.Like{}).Where("article_id = ?", article.ID).Count(&n).Error)
		return n
	}

	t.Run("first toggle likes", func(t *testing.T) {
		liked, err := repo.ToggleLike(ctx, reader.ID, article.ID)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, 1, likesCount())
		assert.EqualValues(t, 1, likeRows())
	})

	t.Run("second toggle unlikes and restores the count", func(t *testing.T) {
		liked, err := repo.ToggleLike(ctx, reader.ID, article.ID)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.Equal(t, 0, likesCount())
		assert.EqualValues(t, 0, likeRows())
	})

	t.Run("count always matches the like rows", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			_, err := repo.ToggleLike(ctx, reader.ID, article.ID)
			require.NoError(t, err)
			assert.EqualValues(t, likeRows(), likesCount())
		}
	})

	t.Run("liked flag is per user", func(t *testing.T) {
		_, err := repo.ToggleLike(ctx, reader.ID, article.ID)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, article.ID, reader.ID)
		require.NoError(t, err)
		assert.True(t, got.Liked)

		got, err = repo.GetByID(ctx, article.ID, author.UserID)
		require.NoError(t, err)
		assert.False(t, got.Liked)

		got, err = repo.GetByID(ctx, article.ID, 0)
		require.NoError(t, err)
		assert.False(t, got.Liked)
	})
}

func TestIncrementViews(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db, "yazar")
	category := &models.Category{Name: "Teknoloji", Slug: "teknoloji"}
	require.NoError(t, db.Create(category).Error)
	article := seedPublished(t, db, author.ID, category.ID, "görüntülenme", time.Now())

	require.NoError(t, repo.IncrementViews(ctx, article.ID))
	require.NoError(t, repo.IncrementViews(ctx, article.ID))

	got, err := repo.GetByID(ctx, article.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewsCount)
}

func TestGetBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, db, "yazar")
	category := &models.Category{Name: "Teknoloji", Slug: "teknoloji"}
	require.NoError(t, db.Create(category).Error)
	seedPublished(t, db, author.ID, category.ID, "aranan-yazı", time.Now())

	got, err := repo.GetBySlug(ctx, "aranan-yazı", 0)
	require.NoError(t, err)
	assert.Equal(t, "yazar", got.Author.Username)

	_, err = repo.GetBySlug(ctx, "yok-böyle-yazı", 0)
	assert.True(t, IsNotFound(err))
}
