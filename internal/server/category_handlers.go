package server

import (
	"github.com/gofiber/fiber/v2"

	"kalem/internal/models"
)

// GetCategories handles GET /api/categories. The listing is read-mostly
// reference data served through the cache.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStoreError(err))
	}
	return c.JSON(fiber.Map{
		"categories": categories,
		"count":      len(categories),
	})
}
