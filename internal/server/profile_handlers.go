package server

import (
	"kalem/internal/models"
	"kalem/internal/repository"
	"kalem/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfileByUsername handles GET /api/profiles/:username
func (s *Server) GetProfileByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	profile, err := s.userRepo.GetProfileByUsername(c.Context(), username)
	if err != nil {
		if repository.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("profile", username))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStoreError(err))
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/me/profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	actor, err := s.actorFrom(c)
	if err != nil {
		return nil
	}

	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.userService.UpdateProfile(c.Context(), actor, req)
	if err != nil {
		return s.respondServiceError(c, actor, err)
	}
	return c.JSON(profile)
}
