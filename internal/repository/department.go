package repository

import (
	"context"
	"errors"

	"proctrack/internal/cache"
	"proctrack/internal/models"

	"gorm.io/gorm"
)

// DepartmentRepository defines persistence operations for departments.
type DepartmentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Department, error)
	GetByName(ctx context.Context, name string) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	Create(ctx context.Context, dept *models.Department) error
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository returns a new DepartmentRepository implementation.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := r.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Department", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &dept, nil
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*models.Department, error) {
	var dept models.Department
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var depts []models.Department

	err := cache.Aside(ctx, cache.DepartmentListKey, &depts, cache.DepartmentTTL, func() error {
		if err := r.db.WithContext(ctx).Order("name ASC").Find(&depts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return depts, nil
}

func (r *departmentRepository) Create(ctx context.Context, dept *models.Department) error {
	if err := r.db.WithContext(ctx).Create(dept).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("department already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateDepartments(ctx)
	return nil
}
