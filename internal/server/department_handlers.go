package server

import (
	"proctrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

type departmentBody struct {
	Name string `json:"name"`
}

// GetDepartments lists all departments.
func (s *Server) GetDepartments(c *fiber.Ctx) error {
	departments, err := s.departmentService.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"departments": departments})
}

// CreateDepartment adds a new department.
func (s *Server) CreateDepartment(c *fiber.Ctx) error {
	var body departmentBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	department, err := s.departmentService.Create(c.Context(), body.Name)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(department)
}
