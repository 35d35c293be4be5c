package service

import (
	"context"
	"strings"

	"proctrack/internal/models"
	"proctrack/internal/repository"
)

// DepartmentService manages the department directory.
type DepartmentService struct {
	depts repository.DepartmentRepository
}

// NewDepartmentService returns a new DepartmentService.
func NewDepartmentService(depts repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{depts: depts}
}

// List returns all departments ordered by name.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.depts.List(ctx)
}

// Create adds a department, refusing duplicates by name.
func (s *DepartmentService) Create(ctx context.Context, name string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("department name is required")
	}

	existing, err := s.depts.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("department already exists")
	}

	dept := &models.Department{Name: name}
	if err := s.depts.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}
