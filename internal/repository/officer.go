package repository

import (
	"context"
	"errors"

	"proctrack/internal/cache"
	"proctrack/internal/models"
	"proctrack/internal/observability"

	"gorm.io/gorm"
)

// OfficerRepository defines persistence operations for procurement officers.
type OfficerRepository interface {
	// FindByID returns (nil, nil) when no officer has the given ID.
	FindByID(ctx context.Context, id uint) (*models.Officer, error)
	GetByID(ctx context.Context, id uint) (*models.Officer, error)
	List(ctx context.Context) ([]models.Officer, error)
	Create(ctx context.Context, officer *models.Officer) error
	Update(ctx context.Context, officer *models.Officer) error
	Delete(ctx context.Context, id uint) error
	// EmailTaken reports whether another officer (excluding excludeID)
	// already uses the email.
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	// AssignedCount returns how many requests currently reference the officer.
	AssignedCount(ctx context.Context, id uint) (int64, error)
}

type officerRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewOfficerRepository returns a new OfficerRepository implementation.
func NewOfficerRepository(db *gorm.DB) OfficerRepository {
	return &officerRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *officerRepository) FindByID(ctx context.Context, id uint) (*models.Officer, error) {
	var officer models.Officer
	if err := r.db.WithContext(ctx).First(&officer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &officer, nil
}

func (r *officerRepository) GetByID(ctx context.Context, id uint) (*models.Officer, error) {
	officer, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if officer == nil {
		return nil, models.NewNotFoundError("Officer", id)
	}
	return officer, nil
}

func (r *officerRepository) List(ctx context.Context) ([]models.Officer, error) {
	var officers []models.Officer

	err := cache.Aside(ctx, cache.OfficerListKey, &officers, cache.OfficerTTL, func() error {
		defer r.metrics.TrackQuery("list", "officers")()
		if err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&officers).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return officers, nil
}

func (r *officerRepository) Create(ctx context.Context, officer *models.Officer) error {
	defer r.metrics.TrackQuery("create", "officers")()

	if err := r.db.WithContext(ctx).Create(officer).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateEmailError(officer.Email)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateOfficers(ctx)
	return nil
}

func (r *officerRepository) Update(ctx context.Context, officer *models.Officer) error {
	defer r.metrics.TrackQuery("update", "officers")()

	if err := r.db.WithContext(ctx).Save(officer).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateEmailError(officer.Email)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateOfficers(ctx)
	return nil
}

func (r *officerRepository) Delete(ctx context.Context, id uint) error {
	defer r.metrics.TrackQuery("delete", "officers")()

	res := r.db.WithContext(ctx).Delete(&models.Officer{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Officer", id)
	}
	cache.InvalidateOfficers(ctx)
	return nil
}

func (r *officerRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Officer{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *officerRepository) AssignedCount(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("assigned_officer_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
