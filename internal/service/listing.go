package service

import (
	"context"
	"errors"
	"sync"

	"kalem/internal/cache"
	"kalem/internal/models"
	"kalem/internal/observability"
	"kalem/internal/repository"
)

// ErrSuperseded is returned when a listing request was overtaken by a
// newer one before it finished. Its results must not be applied.
var ErrSuperseded = errors.New("listing request superseded by a newer one")

const defaultListingLimit = 20

// ListPublishedInput selects which slice of the published listing to fetch.
type ListPublishedInput struct {
	CategorySlug  string
	Limit         int
	Offset        int
	CurrentUserID uint
}

// ListPublished resolves the category filter and returns published
// articles ordered by published_at descending (article id as tie-break).
// Every call re-queries the store; no cursor state is kept between calls.
func (s *ArticleService) ListPublished(ctx context.Context, in ListPublishedInput) ([]*models.Article, error) {
	slug := in.CategorySlug
	if slug == "" {
		slug = models.CategoryAll
	}

	var categoryID *uint
	if slug != models.CategoryAll {
		category, err := s.categoryRepo.GetBySlug(ctx, slug)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, models.NewNotFoundError("category", slug)
			}
			return nil, models.NewStoreError(err)
		}
		categoryID = &category.ID
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultListingLimit
	}

	query := repository.ArticleQuery{
		Status:     models.StatusPublished,
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     in.Offset,
	}

	var articles []*models.Article
	var err error
	if in.CurrentUserID == 0 && in.Offset == 0 && limit == defaultListingLimit {
		// First anonymous page is the hot path; serve it cache-aside.
		err = cache.Aside(ctx, cache.ListingKey(slug), &articles, cache.ListingTTL, func() error {
			var fetchErr error
			articles, fetchErr = s.articleRepo.List(ctx, query, 0)
			return fetchErr
		})
	} else {
		articles, err = s.articleRepo.List(ctx, query, in.CurrentUserID)
	}
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return articles, nil
}

// ListingSession serializes listing fetches for one consumer with
// last-request-wins semantics: starting a new fetch cancels the previous
// one, and a fetch that finishes after being superseded reports
// ErrSuperseded instead of delivering stale results.
type ListingSession struct {
	svc *ArticleService

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewListingSession creates a listing session bound to the article service.
func NewListingSession(svc *ArticleService) *ListingSession {
	return &ListingSession{svc: svc}
}

// List fetches the published listing for the given filter. If another
// List call starts before this one returns, this call's context is
// cancelled and its results are dropped.
func (l *ListingSession) List(ctx context.Context, in ListPublishedInput) ([]*models.Article, error) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	articles, err := l.svc.ListPublished(ctx, in)

	l.mu.Lock()
	latest := l.seq == seq
	if latest {
		l.cancel = nil
		cancel()
	}
	l.mu.Unlock()

	if !latest {
		observability.ListingStaleDrops.Inc()
		return nil, ErrSuperseded
	}
	return articles, err
}

// Close cancels any in-flight fetch.
func (l *ListingSession) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
