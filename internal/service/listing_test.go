package service

import (
	"context"
	"testing"
	"time"

	"kalem/internal/models"
	"kalem/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListPublished(t *testing.T) {
	t.Run("category slug resolves to a filter", func(t *testing.T) {
		repo := noopArticleRepo()
		repo.listFn = func(_ context.Context, q repository.ArticleQuery, _ uint) ([]*models.Article, error) {
			assert.Equal(t, models.StatusPublished, q.Status)
			require.NotNil(t, q.CategoryID)
			assert.Equal(t, uint(1), *q.CategoryID)
			return []*models.Article{{ID: 1, Slug: "go-ile-web"}}, nil
		}
		categories := noopCategoryRepo()
		categories.getBySlugFn = func(_ context.Context, slug string) (*models.Category, error) {
			assert.Equal(t, "teknoloji", slug)
			return &models.Category{ID: 1, Name: "Teknoloji", Slug: slug}, nil
		}
		svc := NewArticleService(repo, categories)

		articles, err := svc.ListPublished(context.Background(), ListPublishedInput{
			CategorySlug:  "teknoloji",
			CurrentUserID: readerActor.UserID,
		})
		require.NoError(t, err)
		assert.Len(t, articles, 1)
	})

	t.Run("empty slug means no filter", func(t *testing.T) {
		repo := noopArticleRepo()
		repo.listFn = func(_ context.Context, q repository.ArticleQuery, _ uint) ([]*models.Article, error) {
			assert.Nil(t, q.CategoryID)
			return nil, nil
		}
		categories := noopCategoryRepo()
		categories.getBySlugFn = func(_ context.Context, _ string) (*models.Category, error) {
			t.Fatal("the all listing must not resolve a category")
			return nil, nil
		}
		svc := NewArticleService(repo, categories)

		_, err := svc.ListPublished(context.Background(), ListPublishedInput{CurrentUserID: readerActor.UserID})
		assert.NoError(t, err)
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		categories := noopCategoryRepo()
		categories.getBySlugFn = func(_ context.Context, _ string) (*models.Category, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewArticleService(noopArticleRepo(), categories)

		_, err := svc.ListPublished(context.Background(), ListPublishedInput{CategorySlug: "yok-böyle-kategori"})
		assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	})

	t.Run("limit defaults when unset", func(t *testing.T) {
		repo := noopArticleRepo()
		repo.listFn = func(_ context.Context, q repository.ArticleQuery, _ uint) ([]*models.Article, error) {
			assert.Equal(t, defaultListingLimit, q.Limit)
			return nil, nil
		}
		svc := NewArticleService(repo, noopCategoryRepo())
		_, err := svc.ListPublished(context.Background(), ListPublishedInput{})
		assert.NoError(t, err)
	})
}

func TestListingSessionLastRequestWins(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	repo := noopArticleRepo()
	first := true
	repo.listFn = func(ctx context.Context, _ repository.ArticleQuery, _ uint) ([]*models.Article, error) {
		if first {
			first = false
			close(entered)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-release:
			}
		}
		return []*models.Article{{ID: 2, Slug: "taze-sonuç"}}, nil
	}
	svc := NewArticleService(repo, noopCategoryRepo())
	session := NewListingSession(svc)
	defer session.Close()

	firstErr := make(chan error, 1)
	go func() {
		_, err := session.List(context.Background(), ListPublishedInput{CurrentUserID: 1})
		firstErr <- err
	}()

	<-entered
	articles, err := session.List(context.Background(), ListPublishedInput{CurrentUserID: 1, CategorySlug: "teknoloji"})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "taze-sonuç", articles[0].Slug)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded request never returned")
	}
}

func TestListingSessionSingleRequest(t *testing.T) {
	repo := noopArticleRepo()
	repo.listFn = func(_ context.Context, _ repository.ArticleQuery, _ uint) ([]*models.Article, error) {
		return []*models.Article{{ID: 3}}, nil
	}
	session := NewListingSession(NewArticleService(repo, noopCategoryRepo()))
	defer session.Close()

	articles, err := session.List(context.Background(), ListPublishedInput{CurrentUserID: 1})
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}
