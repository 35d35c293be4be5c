package service

import (
	"context"
	"strings"

	"proctrack/internal/models"
	"proctrack/internal/repository"
	"proctrack/internal/validation"
)

// OfficerService manages the procurement officer directory.
type OfficerService struct {
	officers repository.OfficerRepository
}

// NewOfficerService returns a new OfficerService.
func NewOfficerService(officers repository.OfficerRepository) *OfficerService {
	return &OfficerService{officers: officers}
}

// OfficerInput carries officer fields for create and update.
type OfficerInput struct {
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
}

func (in *OfficerInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.MiddleName = strings.TrimSpace(in.MiddleName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
}

func (in *OfficerInput) validate() error {
	if err := validation.ValidatePersonName(in.FirstName); err != nil {
		return models.NewValidationError("first name: " + err.Error())
	}
	if in.MiddleName != "" {
		if err := validation.ValidatePersonName(in.MiddleName); err != nil {
			return models.NewValidationError("middle name: " + err.Error())
		}
	}
	if err := validation.ValidatePersonName(in.LastName); err != nil {
		return models.NewValidationError("last name: " + err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// List returns all officers ordered by name.
func (s *OfficerService) List(ctx context.Context) ([]models.Officer, error) {
	return s.officers.List(ctx)
}

// Get returns one officer by ID.
func (s *OfficerService) Get(ctx context.Context, id uint) (*models.Officer, error) {
	return s.officers.GetByID(ctx, id)
}

// Create adds an officer to the directory. Emails must be unique.
func (s *OfficerService) Create(ctx context.Context, in OfficerInput) (*models.Officer, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	taken, err := s.officers.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewDuplicateEmailError(in.Email)
	}

	officer := &models.Officer{
		FirstName:  in.FirstName,
		MiddleName: in.MiddleName,
		LastName:   in.LastName,
		Email:      in.Email,
	}
	if err := s.officers.Create(ctx, officer); err != nil {
		return nil, err
	}
	return officer, nil
}

// Update edits an existing officer's details.
func (s *OfficerService) Update(ctx context.Context, id uint, in OfficerInput) (*models.Officer, error) {
	officer, err := s.officers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	taken, err := s.officers.EmailTaken(ctx, in.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewDuplicateEmailError(in.Email)
	}

	officer.FirstName = in.FirstName
	officer.MiddleName = in.MiddleName
	officer.LastName = in.LastName
	officer.Email = in.Email

	if err := s.officers.Update(ctx, officer); err != nil {
		return nil, err
	}
	return officer, nil
}

// Delete removes an officer. Officers with assigned requests stay until
// their requests are reassigned.
func (s *OfficerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.officers.GetByID(ctx, id); err != nil {
		return err
	}

	assigned, err := s.officers.AssignedCount(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return models.NewConflictError("officer has assigned requests")
	}

	return s.officers.Delete(ctx, id)
}
