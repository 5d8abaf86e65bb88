package server

import (
	"context"
	"strconv"

	"kalem/internal/models"
	"kalem/internal/policy"
	"kalem/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListArticles handles GET /api/articles?category=slug&limit=&offset=
// Only published articles appear here, newest first.
func (s *Server) ListArticles(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)

	articles, err := s.articleService.ListPublished(c.Context(), service.ListPublishedInput{
		CategorySlug:  c.Query("category"),
		Limit:         pagination.Limit,
		Offset:        pagination.Offset,
		CurrentUserID: currentUserID(c),
	})
	if err != nil {
		return s.respondServiceError(c, policy.Actor{}, err)
	}

	views := service.TransformArticles(articles)
	return c.JSON(fiber.Map{
		"articles": views,
		"count":    len(views),
	})
}

// GetArticle handles GET /api/articles/:idOrSlug. A numeric parameter is
// treated as an ID, anything else as a slug.
func (s *Server) GetArticle(c *fiber.Ctx) error {
	actor, err := s.actorFrom(c)
	if err != nil {
		return nil
	}

	idOrSlug := c.Params("idOrSlug")
	var id uint
	if parsed, convErr := strconv.ParseUint(idOrSlug, 10, 32); convErr == nil {
		id = uint(parsed)
	}

	article, err := s.articleService.Get(c.Context(), actor, idOrSlug, id)
	if err != nil {
		return s.respondServiceError(c, actor, err)
	}
	return c.JSON(service.TransformArticle(article))
}

// CreateArticle handles POST /api/articles and creates a new draft.
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	actor, err := s.actorFrom(c)
	if err != nil {
		return nil
	}

	var req service.CreateArticleInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.Create(c.Context(), actor, req)
	if err != nil {
		return s.respondServiceError(c, actor, err)
	}
	return c.Status(fiber.StatusCreated).JSON(service.TransformArticle(article))
}

// SaveArticleDraft handles PUT /api/articles/:id and updates content
// fields while the article is still editable.
func (s *Server) SaveArticleDraft(c *fiber.Ctx) error {
	actor, err := s.actorFrom(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.SaveDraftInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.SaveDraft(c.Context(), actor, id, req)
	if err != nil {
		return s.respondServiceError(c, actor, err)
	}
	return c.JSON(service.TransformArticle(article))
}

// SubmitArticle handles POST /api/articles/:id/submit
func (s *Server) SubmitArticle(c *fiber.Ctx) error {
	return s.transitionHandler(c, s.articleService.SubmitForReview)
}

// PublishArticle handles POST /api/articles/:id/publish (admin only)
func (s *Server) PublishArticle(c *fiber.Ctx) error {
	return s.transitionHandler(c, s.articleService.Publish)
}

// RejectArticle handles POST /api/articles/:id/reject (admin only)
func (s *Server) RejectArticle(c *fiber.Ctx) error {
	return s.transitionHandler(c, s.articleService.Reject)
}

func (s *Server) transitionHandler(c *fiber.Ctx, op func(ctx context.Context, actor policy.Actor, id uint) (*models.Article, error)) error {
	actor, err := s.actorFrom(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := op(c.Context(), actor, id)
	if err != nil {
		return s.respondServiceError(c, actor, err)
	}
	return c.JSON(service.TransformArticle(article))
}

// ToggleArticleLike handles POST /api/articles/:id/like and flips the
// caller's like on a published article.
func (s *Server) ToggleArticleLike(c *fiber.Ctx) error {
	actor, err := s.actorFrom(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := s.articleService.ToggleLike(c.Context(), actor, id)
	if err != nil {
		return s.respondServiceError(c, actor, err)
	}
	return c.JSON(service.TransformArticle(article))
}

// GetMyArticles handles GET /api/me/articles and returns the caller's
// articles in every lifecycle state.
func (s *Server) GetMyArticles(c *fiber.Ctx) error {
	actor, err := s.actorFrom(c)
	if err != nil {
		return nil
	}
	pagination := parsePagination(c, 20)

	articles, err := s.articleService.ListOwn(c.Context(), actor, pagination.Limit, pagination.Offset)
	if err != nil {
		return s.respondServiceError(c, actor, err)
	}

	views := service.TransformArticles(articles)
	return c.JSON(fiber.Map{
		"articles": views,
		"count":    len(views),
	})
}
