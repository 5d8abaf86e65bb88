package seed

import (
	"testing"

	"kalem/internal/database"
	"kalem/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.MigrateAll(db))
	return db
}

func TestCategoriesIdempotent(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Categories(db))
	require.NoError(t, Categories(db))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, len(defaultCategories), count)

	var teknoloji models.Category
	require.NoError(t, db.Where("slug = ?", "teknoloji").First(&teknoloji).Error)
	assert.Equal(t, "Teknoloji", teknoloji.Name)
}

func TestSeedSmallDataset(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{Authors: 2, Readers: 3, Articles: 6, Clean: true}))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 6, users, "admin + authors + readers")

	var articles []models.Article
	require.NoError(t, db.Find(&articles).Error)
	assert.Len(t, articles, 6)

	for _, a := range articles {
		if a.Status == models.StatusPublished {
			assert.NotNil(t, a.PublishedAt)
		} else {
			assert.Nil(t, a.PublishedAt)
		}

		var likeRows int64
		require.NoError(t, db.Model(&models.Like{}).Where("article_id = ?", a.ID).Count(&likeRows).Error)
		assert.EqualValues(t, likeRows, a.LikesCount, "denormalized count matches like rows")
	}
}

func TestFactoryCreateUserRoles(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db)

	author, err := f.CreateUser(models.RoleAuthor)
	require.NoError(t, err)
	require.NotNil(t, author.Role)
	assert.Equal(t, models.RoleAuthor, author.Role.Role)
	require.NotNil(t, author.Profile)
	assert.NotEmpty(t, author.Profile.Username)
}
