package service

import (
	"context"
	"testing"

	"proctrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfficerService_Create(t *testing.T) {
	t.Parallel()

	t.Run("normalizes and persists", func(t *testing.T) {
		t.Parallel()
		repo := noopOfficerRepo()
		var created *models.Officer
		repo.createFn = func(_ context.Context, o *models.Officer) error {
			o.ID = 7
			created = o
			return nil
		}

		svc := NewOfficerService(repo)
		got, err := svc.Create(context.Background(), OfficerInput{
			FirstName: "  Sarah ",
			LastName:  "Johnson",
			Email:     " Sarah.Johnson@Example.COM ",
		})
		require.NoError(t, err)
		assert.Equal(t, "sarah.johnson@example.com", got.Email)
		assert.Equal(t, "Sarah Johnson", got.FullName())
		require.NotNil(t, created)
	})

	t.Run("duplicate email refused", func(t *testing.T) {
		t.Parallel()
		repo := noopOfficerRepo()
		repo.emailTakenFn = func(context.Context, string, uint) (bool, error) { return true, nil }

		svc := NewOfficerService(repo)
		_, err := svc.Create(context.Background(), OfficerInput{
			FirstName: "Sarah",
			LastName:  "Johnson",
			Email:     "sarah.johnson@example.com",
		})
		assert.True(t, models.HasCode(err, models.CodeDuplicateEmail))
	})

	t.Run("invalid fields refused", func(t *testing.T) {
		t.Parallel()
		svc := NewOfficerService(noopOfficerRepo())

		_, err := svc.Create(context.Background(), OfficerInput{LastName: "Johnson", Email: "a@b.co"})
		assert.True(t, models.HasCode(err, models.CodeValidation), "missing first name")

		_, err = svc.Create(context.Background(), OfficerInput{FirstName: "Sarah", LastName: "Johnson", Email: "not-an-email"})
		assert.True(t, models.HasCode(err, models.CodeValidation), "bad email")
	})
}

func TestOfficerService_Update(t *testing.T) {
	t.Parallel()

	t.Run("keeping own email is not a duplicate", func(t *testing.T) {
		t.Parallel()
		repo := noopOfficerRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Officer, error) {
			return &models.Officer{ID: id, FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@example.com"}, nil
		}
		var excluded uint
		repo.emailTakenFn = func(_ context.Context, _ string, excludeID uint) (bool, error) {
			excluded = excludeID
			return false, nil
		}

		svc := NewOfficerService(repo)
		got, err := svc.Update(context.Background(), 7, OfficerInput{
			FirstName: "Sarah",
			LastName:  "Johnson-Smith",
			Email:     "sarah.johnson@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(7), excluded, "the officer's own row must be excluded from the check")
		assert.Equal(t, "Sarah Johnson-Smith", got.FullName())
	})

	t.Run("unknown officer", func(t *testing.T) {
		t.Parallel()
		svc := NewOfficerService(noopOfficerRepo())
		_, err := svc.Update(context.Background(), 99, OfficerInput{
			FirstName: "Sarah", LastName: "Johnson", Email: "s@example.com",
		})
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestOfficerService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("refused while requests are assigned", func(t *testing.T) {
		t.Parallel()
		repo := noopOfficerRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Officer, error) {
			return &models.Officer{ID: id}, nil
		}
		repo.assignedCountFn = func(context.Context, uint) (int64, error) { return 2, nil }

		svc := NewOfficerService(repo)
		err := svc.Delete(context.Background(), 7)
		assert.True(t, models.HasCode(err, models.CodeConflict))
	})

	t.Run("unassigned officer removed", func(t *testing.T) {
		t.Parallel()
		repo := noopOfficerRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Officer, error) {
			return &models.Officer{ID: id}, nil
		}
		deleted := false
		repo.deleteFn = func(context.Context, uint) error {
			deleted = true
			return nil
		}

		svc := NewOfficerService(repo)
		require.NoError(t, svc.Delete(context.Background(), 7))
		assert.True(t, deleted)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	t.Parallel()

	t.Run("duplicate name refused", func(t *testing.T) {
		t.Parallel()
		repo := noopDepartmentRepo()
		repo.getByNameFn = func(_ context.Context, name string) (*models.Department, error) {
			return &models.Department{ID: 1, Name: name}, nil
		}

		svc := NewDepartmentService(repo)
		_, err := svc.Create(context.Background(), "Finance")
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("blank name refused", func(t *testing.T) {
		t.Parallel()
		svc := NewDepartmentService(noopDepartmentRepo())
		_, err := svc.Create(context.Background(), "   ")
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("new department persisted", func(t *testing.T) {
		t.Parallel()
		repo := noopDepartmentRepo()
		repo.createFn = func(_ context.Context, d *models.Department) error {
			d.ID = 5
			return nil
		}

		svc := NewDepartmentService(repo)
		got, err := svc.Create(context.Background(), "  Engineering ")
		require.NoError(t, err)
		assert.Equal(t, "Engineering", got.Name)
		assert.Equal(t, uint(5), got.ID)
	})
}
