package server

import (
	"errors"
	"sync"

	"kalem/internal/models"
	"kalem/internal/observability"
	"kalem/internal/policy"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

var (
	httpMetricsOnce sync.Once
	httpMetrics     *fiberprometheus.FiberPrometheus
)

// newHTTPMetrics returns the process-wide Fiber Prometheus middleware.
// The collector registers into the default registry, so it is created once
// even when several Server instances exist (e.g. in tests).
func newHTTPMetrics() *fiberprometheus.FiberPrometheus {
	httpMetricsOnce.Do(func() {
		httpMetrics = observability.NewHTTPMetrics("kalem-api")
	})
	return httpMetrics
}

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid article ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the user ID set by the auth middleware, or 0 for
// anonymous requests.
func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

// actorFrom resolves the policy actor for the request. On failure it writes
// the error response and returns errResponseWritten.
func (s *Server) actorFrom(c *fiber.Ctx) (policy.Actor, error) {
	actor, err := s.userService.ActorFor(c.Context(), currentUserID(c))
	if err != nil {
		_ = s.respondServiceError(c, policy.Actor{}, err)
		return policy.Actor{}, errResponseWritten
	}
	return actor, nil
}

// respondServiceError maps a service error to its HTTP response. A denial
// for an anonymous caller is 401 rather than 403, so clients know signing
// in may help.
func (s *Server) respondServiceError(c *fiber.Ctx, actor policy.Actor, err error) error {
	status := models.StatusForError(err)
	if status == fiber.StatusForbidden && !actor.Authenticated() {
		status = fiber.StatusUnauthorized
	}
	return models.RespondWithError(c, status, err)
}
