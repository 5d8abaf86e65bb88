package service

import (
	"context"
	"strings"
	"time"

	"kalem/internal/cache"
	"kalem/internal/models"
	"kalem/internal/observability"
	"kalem/internal/policy"
	"kalem/internal/repository"
)

// ArticleService is the article lifecycle manager. Every operation
// checks authorization and transition legality before touching the
// store, so a denied call never mutates anything.
type ArticleService struct {
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
}

// CreateArticleInput carries the author-supplied fields for a new article.
type CreateArticleInput struct {
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	CategoryID    uint     `json:"category_id"`
	CoverImageURL string   `json:"cover_image_url"`
	Tags          []string `json:"tags"`
}

// SaveDraftInput carries the editable content fields. Empty fields are
// left unchanged.
type SaveDraftInput struct {
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	CategoryID    uint     `json:"category_id"`
	CoverImageURL string   `json:"cover_image_url"`
	Tags          []string `json:"tags"`
}

// NewArticleService creates a new article service.
func NewArticleService(articleRepo repository.ArticleRepository, categoryRepo repository.CategoryRepository) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
	}
}

// Create validates the input, derives slug, excerpt and read time, and
// persists a new draft. The draft always starts unpublished.
func (s *ArticleService) Create(ctx context.Context, actor policy.Actor, in CreateArticleInput) (*models.Article, error) {
	if err := policy.CanCreate(actor); err != nil {
		return nil, err
	}

	title := trimmed(in.Title)
	content := trimmed(in.Content)
	if title == "" {
		return nil, models.NewValidationError("title is required")
	}
	if content == "" {
		return nil, models.NewValidationError("content is required")
	}
	if in.CategoryID == 0 {
		return nil, models.NewValidationError("category is required")
	}
	if _, err := s.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
		if repository.IsNotFound(err) {
			return nil, models.NewValidationError("unknown category")
		}
		return nil, models.NewStoreError(err)
	}

	base := Slugify(title)
	if base == "" {
		return nil, models.NewValidationError("title must contain at least one alphanumeric character")
	}
	slug, err := s.articleRepo.EnsureUniqueSlug(ctx, base)
	if err != nil {
		return nil, models.NewStoreError(err)
	}

	article := &models.Article{
		Title:         title,
		Slug:          slug,
		Excerpt:       DeriveExcerpt(in.Excerpt, content),
		Content:       content,
		CoverImageURL: trimmed(in.CoverImageURL),
		AuthorID:      actor.ProfileID,
		CategoryID:    in.CategoryID,
		Tags:          NormalizeTags(in.Tags),
		Status:        models.StatusDraft,
		ReadTime:      ComputeReadTime(content),
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, models.NewStoreError(err)
	}
	return article, nil
}

// SaveDraft updates content fields while the article is still editable
// (draft or rejected). The status and slug are left untouched.
func (s *ArticleService) SaveDraft(ctx context.Context, actor policy.Actor, articleID uint, in SaveDraftInput) (*models.Article, error) {
	article, err := s.get(ctx, articleID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionSaveDraft, article); err != nil {
		return nil, err
	}
	if !article.Status.Editable() {
		return nil, models.NewInvalidTransitionError("edit", article.Status)
	}

	if t := trimmed(in.Title); t != "" {
		article.Title = t
	}
	if c := trimmed(in.Content); c != "" {
		article.Content = c
		article.ReadTime = ComputeReadTime(c)
	}
	if e := trimmed(in.Excerpt); e != "" {
		article.Excerpt = e
	}
	if in.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
			if repository.IsNotFound(err) {
				return nil, models.NewValidationError("unknown category")
			}
			return nil, models.NewStoreError(err)
		}
		article.CategoryID = in.CategoryID
	}
	if cover := trimmed(in.CoverImageURL); cover != "" {
		article.CoverImageURL = cover
	}
	if in.Tags != nil {
		article.Tags = NormalizeTags(in.Tags)
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, models.NewStoreError(err)
	}
	return article, nil
}

// SubmitForReview moves a draft or rejected article into the pending
// queue for an admin decision.
func (s *ArticleService) SubmitForReview(ctx context.Context, actor policy.Actor, articleID uint) (*models.Article, error) {
	article, err := s.transition(ctx, actor, articleID, policy.ActionSubmitForReview,
		func(a *models.Article) error {
			if a.Status != models.StatusDraft && a.Status != models.StatusRejected {
				return models.NewInvalidTransitionError("submit", a.Status)
			}
			a.Status = models.StatusPending
			return nil
		})
	observability.RecordTransition("submit", err)
	return article, err
}

// Publish moves a pending article to published and stamps published_at.
// The timestamp is set exactly once and never changes afterwards.
func (s *ArticleService) Publish(ctx context.Context, actor policy.Actor, articleID uint) (*models.Article, error) {
	article, err := s.transition(ctx, actor, articleID, policy.ActionPublish,
		func(a *models.Article) error {
			if a.Status != models.StatusPending {
				return models.NewInvalidTransitionError("publish", a.Status)
			}
			a.Status = models.StatusPublished
			if a.PublishedAt == nil {
				now := time.Now()
				a.PublishedAt = &now
			}
			return nil
		})
	observability.RecordTransition("publish", err)
	if err == nil {
		cache.InvalidateListings(ctx, article.Category.Slug)
	}
	return article, err
}

// Reject sends a pending article back to its author for re-editing.
func (s *ArticleService) Reject(ctx context.Context, actor policy.Actor, articleID uint) (*models.Article, error) {
	article, err := s.transition(ctx, actor, articleID, policy.ActionReject,
		func(a *models.Article) error {
			if a.Status != models.StatusPending {
				return models.NewInvalidTransitionError("reject", a.Status)
			}
			a.Status = models.StatusRejected
			return nil
		})
	observability.RecordTransition("reject", err)
	return article, err
}

// transition loads the article, checks role authorization, applies the
// status change and persists it. The apply step runs before any write,
// so an illegal transition leaves the stored article untouched.
func (s *ArticleService) transition(ctx context.Context, actor policy.Actor, articleID uint, action policy.Action, apply func(*models.Article) error) (*models.Article, error) {
	article, err := s.get(ctx, articleID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, action, article); err != nil {
		return nil, err
	}
	if err := apply(article); err != nil {
		return nil, err
	}
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, models.NewStoreError(err)
	}
	return article, nil
}

// Get returns a single article by numeric ID or slug, enforcing the view
// policy: published articles are public, everything else is owner/admin
// only. Views on published articles are counted.
func (s *ArticleService) Get(ctx context.Context, actor policy.Actor, idOrSlug string, id uint) (*models.Article, error) {
	var article *models.Article
	var err error
	if id != 0 {
		article, err = s.articleRepo.GetByID(ctx, id, actor.UserID)
	} else {
		article, err = s.articleRepo.GetBySlug(ctx, idOrSlug, actor.UserID)
	}
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, models.NewNotFoundError("article", idOrSlug)
		}
		return nil, models.NewStoreError(err)
	}

	if err := policy.Authorize(actor, policy.ActionView, article); err != nil {
		return nil, err
	}

	if article.Status == models.StatusPublished {
		if err := s.articleRepo.IncrementViews(ctx, article.ID); err == nil {
			article.ViewsCount++
		}
	}
	return article, nil
}

// ListOwn returns the actor's own articles in every lifecycle state.
func (s *ArticleService) ListOwn(ctx context.Context, actor policy.Actor, limit, offset int) ([]*models.Article, error) {
	if !actor.Authenticated() {
		return nil, models.NewUnauthorizedError("sign in to list your articles")
	}
	articles, err := s.articleRepo.GetByAuthorID(ctx, actor.ProfileID, limit, offset)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return articles, nil
}

// ToggleLike flips the actor's like on a published article. Exactly one
// like row is inserted or deleted per call, and the count moves with it.
// The returned article carries the store's converged counts.
func (s *ArticleService) ToggleLike(ctx context.Context, actor policy.Actor, articleID uint) (*models.Article, error) {
	article, err := s.get(ctx, articleID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionLike, article); err != nil {
		return nil, err
	}

	liked, err := s.articleRepo.ToggleLike(ctx, actor.UserID, articleID)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	if liked {
		observability.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	}

	// Re-fetch: the local count is advisory, the store's is authoritative.
	return s.get(ctx, articleID, actor.UserID)
}

func (s *ArticleService) get(ctx context.Context, articleID, currentUserID uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID, currentUserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, models.NewNotFoundError("article", articleID)
		}
		return nil, models.NewStoreError(err)
	}
	return article, nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
