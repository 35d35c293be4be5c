package service

import (
	"context"
	"time"

	"proctrack/internal/models"
)

// requestRepoStub is a function-field stub for repository.RequestRepository.
type requestRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.Request, error)
	listFn       func(ctx context.Context) ([]models.Request, error)
	createFn     func(ctx context.Context, req *models.Request) error
	updateFn     func(ctx context.Context, req *models.Request, expected time.Time) error
	deleteFn     func(ctx context.Context, id uint) error
	appendFn     func(ctx context.Context, event *models.StageEvent) error
	listEventsFn func(ctx context.Context, requestID uint) ([]models.StageEvent, error)
}

func noopRequestRepo() *requestRepoStub {
	return &requestRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.Request, error) { return nil, models.NewNotFoundError("Request", 0) },
		listFn:       func(context.Context) ([]models.Request, error) { return nil, nil },
		createFn:     func(context.Context, *models.Request) error { return nil },
		updateFn:     func(context.Context, *models.Request, time.Time) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		appendFn:     func(context.Context, *models.StageEvent) error { return nil },
		listEventsFn: func(context.Context, uint) ([]models.StageEvent, error) { return nil, nil },
	}
}

func (s *requestRepoStub) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	return s.getByIDFn(ctx, id)
}
func (s *requestRepoStub) List(ctx context.Context) ([]models.Request, error) {
	return s.listFn(ctx)
}
func (s *requestRepoStub) Create(ctx context.Context, req *models.Request) error {
	return s.createFn(ctx, req)
}
func (s *requestRepoStub) Update(ctx context.Context, req *models.Request, expected time.Time) error {
	return s.updateFn(ctx, req, expected)
}
func (s *requestRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *requestRepoStub) AppendEvent(ctx context.Context, event *models.StageEvent) error {
	return s.appendFn(ctx, event)
}
func (s *requestRepoStub) ListEvents(ctx context.Context, requestID uint) ([]models.StageEvent, error) {
	return s.listEventsFn(ctx, requestID)
}

// officerRepoStub is a function-field stub for repository.OfficerRepository.
type officerRepoStub struct {
	findByIDFn      func(ctx context.Context, id uint) (*models.Officer, error)
	getByIDFn       func(ctx context.Context, id uint) (*models.Officer, error)
	listFn          func(ctx context.Context) ([]models.Officer, error)
	createFn        func(ctx context.Context, officer *models.Officer) error
	updateFn        func(ctx context.Context, officer *models.Officer) error
	deleteFn        func(ctx context.Context, id uint) error
	emailTakenFn    func(ctx context.Context, email string, excludeID uint) (bool, error)
	assignedCountFn func(ctx context.Context, id uint) (int64, error)
}

func noopOfficerRepo() *officerRepoStub {
	return &officerRepoStub{
		findByIDFn:      func(context.Context, uint) (*models.Officer, error) { return nil, nil },
		getByIDFn:       func(context.Context, uint) (*models.Officer, error) { return nil, models.NewNotFoundError("Officer", 0) },
		listFn:          func(context.Context) ([]models.Officer, error) { return nil, nil },
		createFn:        func(context.Context, *models.Officer) error { return nil },
		updateFn:        func(context.Context, *models.Officer) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		emailTakenFn:    func(context.Context, string, uint) (bool, error) { return false, nil },
		assignedCountFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

func (s *officerRepoStub) FindByID(ctx context.Context, id uint) (*models.Officer, error) {
	return s.findByIDFn(ctx, id)
}
func (s *officerRepoStub) GetByID(ctx context.Context, id uint) (*models.Officer, error) {
	return s.getByIDFn(ctx, id)
}
func (s *officerRepoStub) List(ctx context.Context) ([]models.Officer, error) {
	return s.listFn(ctx)
}
func (s *officerRepoStub) Create(ctx context.Context, officer *models.Officer) error {
	return s.createFn(ctx, officer)
}
func (s *officerRepoStub) Update(ctx context.Context, officer *models.Officer) error {
	return s.updateFn(ctx, officer)
}
func (s *officerRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *officerRepoStub) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.emailTakenFn(ctx, email, excludeID)
}
func (s *officerRepoStub) AssignedCount(ctx context.Context, id uint) (int64, error) {
	return s.assignedCountFn(ctx, id)
}

// departmentRepoStub is a function-field stub for repository.DepartmentRepository.
type departmentRepoStub struct {
	getByIDFn   func(ctx context.Context, id uint) (*models.Department, error)
	getByNameFn func(ctx context.Context, name string) (*models.Department, error)
	listFn      func(ctx context.Context) ([]models.Department, error)
	createFn    func(ctx context.Context, dept *models.Department) error
}

func noopDepartmentRepo() *departmentRepoStub {
	return &departmentRepoStub{
		getByIDFn:   func(context.Context, uint) (*models.Department, error) { return nil, models.NewNotFoundError("Department", 0) },
		getByNameFn: func(context.Context, string) (*models.Department, error) { return nil, nil },
		listFn:      func(context.Context) ([]models.Department, error) { return nil, nil },
		createFn:    func(context.Context, *models.Department) error { return nil },
	}
}

func (s *departmentRepoStub) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	return s.getByIDFn(ctx, id)
}
func (s *departmentRepoStub) GetByName(ctx context.Context, name string) (*models.Department, error) {
	return s.getByNameFn(ctx, name)
}
func (s *departmentRepoStub) List(ctx context.Context) ([]models.Department, error) {
	return s.listFn(ctx)
}
func (s *departmentRepoStub) Create(ctx context.Context, dept *models.Department) error {
	return s.createFn(ctx, dept)
}
