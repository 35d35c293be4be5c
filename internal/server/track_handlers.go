package server

import (
	"github.com/gofiber/fiber/v2"
)

// TrackRequest is the public tracking endpoint. It resolves a requisition
// number to the request's current stage and history without authentication.
func (s *Server) TrackRequest(c *fiber.Ctx) error {
	result, err := s.requestService.Track(c.Context(), c.Params("reqNumber"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}
