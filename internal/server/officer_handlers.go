package server

import (
	"proctrack/internal/models"
	"proctrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

type officerBody struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
}

func (b officerBody) toInput() service.OfficerInput {
	return service.OfficerInput{
		FirstName:  b.FirstName,
		MiddleName: b.MiddleName,
		LastName:   b.LastName,
		Email:      b.Email,
	}
}

// GetOfficers lists all procurement officers.
func (s *Server) GetOfficers(c *fiber.Ctx) error {
	officers, err := s.officerService.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"officers": officers})
}

// GetOfficer returns a single officer by ID.
func (s *Server) GetOfficer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	officer, err := s.officerService.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(officer)
}

// CreateOfficer adds an officer to the directory.
func (s *Server) CreateOfficer(c *fiber.Ctx) error {
	var body officerBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	officer, err := s.officerService.Create(c.Context(), body.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(officer)
}

// UpdateOfficer edits an officer's details.
func (s *Server) UpdateOfficer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var body officerBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	officer, err := s.officerService.Update(c.Context(), id, body.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(officer)
}

// DeleteOfficer removes an officer from the directory. Officers with
// requests still assigned to them cannot be removed.
func (s *Server) DeleteOfficer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.officerService.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Officer deleted"})
}
