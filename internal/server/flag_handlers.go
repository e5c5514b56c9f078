package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/flags. Rollout flags are evaluated
// against the session user, so logged-out callers only see hard-enabled
// flags.
// @Summary Feature flags
// @Tags flags
// @Produce json
// @Success 200 {object} object{flags=map[string]bool}
// @Router /flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	var userID uint
	if v, ok := c.Locals("userID").(uint); ok {
		userID = v
	}

	return c.JSON(fiber.Map{
		"flags": s.flags.Snapshot(userID),
	})
}
