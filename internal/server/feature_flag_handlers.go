package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags reports the raw flag configuration plus the evaluated
// state for the requesting user.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags":     s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(actorID(c)),
	})
}
