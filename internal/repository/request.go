// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"proctrack/internal/cache"
	"proctrack/internal/models"
	"proctrack/internal/observability"

	"gorm.io/gorm"
)

// RequestRepository defines persistence operations for procurement requests.
type RequestRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Request, error)
	List(ctx context.Context) ([]models.Request, error)
	Create(ctx context.Context, req *models.Request) error
	// Update persists req only if the row's updated_at still matches
	// expectedUpdatedAt. A stale guard yields a conflict error.
	Update(ctx context.Context, req *models.Request, expectedUpdatedAt time.Time) error
	Delete(ctx context.Context, id uint) error
	AppendEvent(ctx context.Context, event *models.StageEvent) error
	ListEvents(ctx context.Context, requestID uint) ([]models.StageEvent, error)
}

type requestRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
	log     *observability.RepoLogger
}

// NewRequestRepository returns a new RequestRepository implementation.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{
		db:      db,
		metrics: observability.NewDatabaseMetrics(db),
		log:     observability.NewRepoLogger("requests"),
	}
}

func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var req models.Request
	key := cache.RequestKey(id)

	err := cache.Aside(ctx, key, &req, cache.RequestTTL, func() error {
		defer r.metrics.TrackQuery("get", "requests")()
		if err := r.db.WithContext(ctx).
			Preload("Officer").
			Preload("Department").
			First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Request", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) List(ctx context.Context) ([]models.Request, error) {
	defer r.metrics.TrackQuery("list", "requests")()

	var reqs []models.Request
	if err := r.db.WithContext(ctx).
		Preload("Officer").
		Preload("Department").
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *requestRepository) Create(ctx context.Context, req *models.Request) error {
	defer r.metrics.TrackQuery("create", "requests")()

	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.RequestStatsKey)
	return nil
}

func (r *requestRepository) Update(ctx context.Context, req *models.Request, expectedUpdatedAt time.Time) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "request.update", "requests")
	defer span.End()
	defer r.metrics.TrackQuery("update", "requests")()

	res := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("id = ? AND updated_at = ?", req.ID, expectedUpdatedAt).
		Select("item", "requested_by", "department_id", "priority", "stage", "assigned_officer_id", "updated_at").
		Updates(map[string]any{
			"item":                req.Item,
			"requested_by":        req.RequestedBy,
			"department_id":       req.DepartmentID,
			"priority":            req.Priority,
			"stage":               req.Stage,
			"assigned_officer_id": req.AssignedOfficerID,
			"updated_at":          req.UpdatedAt,
		})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "update")
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the row is gone or someone updated it first.
		var exists int64
		r.db.WithContext(ctx).Model(&models.Request{}).Where("id = ?", req.ID).Count(&exists)
		if exists == 0 {
			return models.NewNotFoundError("Request", req.ID)
		}
		r.log.LogOperation(ctx, "update_conflict", map[string]any{"request_id": req.ID})
		return models.NewConflictError("request was modified concurrently")
	}

	cache.InvalidateRequest(ctx, req.ID, req.ReqNumber())
	return nil
}

func (r *requestRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "request.delete", "requests")
	defer span.End()
	defer r.metrics.TrackQuery("delete", "requests")()

	res := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&models.StageEvent{}).Error; err != nil {
			return err
		}
		del := tx.Delete(&models.Request{}, id)
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return models.NewNotFoundError("Request", id)
		}
		return nil
	})
	if res != nil {
		if models.HasCode(res, models.CodeNotFound) {
			return res
		}
		r.log.LogError(ctx, res, "delete")
		return models.NewInternalError(res)
	}

	cache.InvalidateRequest(ctx, id, (&models.Request{ID: id}).ReqNumber())
	return nil
}

func (r *requestRepository) AppendEvent(ctx context.Context, event *models.StageEvent) error {
	defer r.metrics.TrackQuery("create", "stage_events")()

	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.RequestHistoryKey(event.RequestID))
	return nil
}

func (r *requestRepository) ListEvents(ctx context.Context, requestID uint) ([]models.StageEvent, error) {
	var events []models.StageEvent
	key := cache.RequestHistoryKey(requestID)

	err := cache.Aside(ctx, key, &events, cache.HistoryTTL, func() error {
		defer r.metrics.TrackQuery("list", "stage_events")()
		if err := r.db.WithContext(ctx).
			Where("request_id = ?", requestID).
			Order("created_at ASC").
			Find(&events).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite says "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
