package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	articleKeyPrefix  = "article:%d"
	listingKeyPrefix  = "articles:published:%s"
	userKeyPrefix     = "user:%d"
	categoriesListKey = "categories:list"
)

const (
	ArticleTTL    = 10 * time.Minute
	ListingTTL    = 1 * time.Minute
	UserTTL       = 5 * time.Minute
	CategoriesTTL = 30 * time.Minute
)

func ArticleKey(articleID uint) string {
	return fmt.Sprintf(articleKeyPrefix, articleID)
}

// ListingKey is the cache key for the published listing of one category
// slug ("all" for the unfiltered listing).
func ListingKey(categorySlug string) string {
	return fmt.Sprintf(listingKeyPrefix, categorySlug)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func CategoriesKey() string {
	return categoriesListKey
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateArticle(ctx context.Context, articleID uint) {
	Invalidate(ctx, ArticleKey(articleID))
}

// InvalidateListings drops the cached published listings. Called when an
// article is published or rejected, so listings never serve stale state.
func InvalidateListings(ctx context.Context, categorySlug string) {
	Invalidate(ctx, ListingKey(CategoryAllSlug), ListingKey(categorySlug))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// CategoryAllSlug mirrors models.CategoryAll without importing models.
const CategoryAllSlug = "all"
