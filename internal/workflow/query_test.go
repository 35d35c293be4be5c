package workflow

import (
	"testing"
	"time"

	"proctrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func sampleRequests() []models.Request {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	return []models.Request{
		{
			ID: 1, Item: "Laptop Computer - Dell Latitude", RequestedBy: "Norah Norasco",
			Priority: models.PriorityHigh, Stage: models.StageProductSourcing,
			AssignedOfficerID: uintPtr(4),
			CreatedAt:         base, UpdatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: 2, Item: "Office Chairs - Ergonomic", RequestedBy: "David Smith",
			Priority: models.PriorityNormal, Stage: models.StagePendingAssignment,
			CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour),
		},
		{
			ID: 3, Item: "Projector - 4K Ultra HD", RequestedBy: "John Doe",
			Priority: models.PriorityLow, Stage: models.StageCompleted,
			AssignedOfficerID: uintPtr(5),
			CreatedAt:         base.Add(2 * time.Hour), UpdatedAt: base.Add(72 * time.Hour),
		},
	}
}

func TestFilter_EmptyCriteriaIsIdentity(t *testing.T) {
	t.Parallel()

	reqs := sampleRequests()
	got := Filter(reqs, Criteria{})
	assert.Equal(t, reqs, got, "no criteria means no filtering, in input order")
}

func TestFilter_Search(t *testing.T) {
	t.Parallel()

	reqs := sampleRequests()

	t.Run("matches item case-insensitively", func(t *testing.T) {
		got := Filter(reqs, Criteria{Search: "laptop"})
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("matches requester name", func(t *testing.T) {
		got := Filter(reqs, Criteria{Search: "smith"})
		require.Len(t, got, 1)
		assert.Equal(t, uint(2), got[0].ID)
	})

	t.Run("matches zero-padded requisition number", func(t *testing.T) {
		got := Filter(reqs, Criteria{Search: "003"})
		require.Len(t, got, 1)
		assert.Equal(t, uint(3), got[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Filter(reqs, Criteria{Search: "forklift"}))
	})
}

func TestFilter_StageAndPriority(t *testing.T) {
	t.Parallel()

	reqs := sampleRequests()

	got := Filter(reqs, Criteria{Stage: models.StageCompleted})
	require.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].ID)

	got = Filter(reqs, Criteria{Priority: models.PriorityHigh})
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestFilter_Officer(t *testing.T) {
	t.Parallel()

	reqs := sampleRequests()

	t.Run("by officer id", func(t *testing.T) {
		got := Filter(reqs, Criteria{Officer: "4"})
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("unassigned matches nil officer", func(t *testing.T) {
		got := Filter(reqs, Criteria{Officer: OfficerUnassigned})
		require.Len(t, got, 1)
		assert.Equal(t, uint(2), got[0].ID)
	})
}

func TestFilter_CriteriaCombineWithAND(t *testing.T) {
	t.Parallel()

	reqs := sampleRequests()

	got := Filter(reqs, Criteria{Search: "o", Priority: models.PriorityHigh, Officer: "4"})
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)

	assert.Empty(t, Filter(reqs, Criteria{Search: "laptop", Priority: models.PriorityLow}))
}

func TestSortBy(t *testing.T) {
	t.Parallel()

	reqs := sampleRequests()

	t.Run("createdAt newest first", func(t *testing.T) {
		got := SortBy(reqs, SortCreatedAt)
		assert.Equal(t, []uint{3, 2, 1}, ids(got))
	})

	t.Run("updatedAt most recent first", func(t *testing.T) {
		got := SortBy(reqs, SortUpdatedAt)
		assert.Equal(t, []uint{3, 1, 2}, ids(got))
	})

	t.Run("priority highest first", func(t *testing.T) {
		got := SortBy(reqs, SortPriority)
		assert.Equal(t, []uint{1, 2, 3}, ids(got))
	})

	t.Run("stage lexicographic ascending", func(t *testing.T) {
		got := SortBy(reqs, SortStage)
		// completed < pending-assignment < product-sourcing
		assert.Equal(t, []uint{3, 2, 1}, ids(got))
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		before := ids(reqs)
		SortBy(reqs, SortPriority)
		assert.Equal(t, before, ids(reqs))
	})
}

func TestSortBy_Stable(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	reqs := []models.Request{
		{ID: 10, CreatedAt: created, Priority: models.PriorityNormal},
		{ID: 11, CreatedAt: created, Priority: models.PriorityNormal},
		{ID: 12, CreatedAt: created, Priority: models.PriorityNormal},
	}

	got := SortBy(reqs, SortCreatedAt)
	assert.Equal(t, []uint{10, 11, 12}, ids(got),
		"equal creation times must keep their relative input order")
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	reqs := []models.Request{
		{Stage: models.StagePendingAssignment, Priority: models.PriorityNormal},
		{Stage: models.StageAssigned, Priority: models.PriorityHigh},
		{Stage: models.StageCompleted, Priority: models.PriorityNormal},
	}

	got := ComputeStats(reqs)
	assert.Equal(t, Stats{Total: 3, Pending: 2, Completed: 1, Urgent: 1}, got)
}

func TestComputeStats_OverrideStagesAreNeitherPendingNorCompleted(t *testing.T) {
	t.Parallel()

	reqs := []models.Request{
		{Stage: models.StageDeclined, Priority: models.PriorityHigh},
		{Stage: models.StageCancelled, Priority: models.PriorityLow},
	}

	got := ComputeStats(reqs)
	assert.Equal(t, Stats{Total: 2, Pending: 0, Completed: 0, Urgent: 1}, got)
}

func TestComputeStats_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Stats{}, ComputeStats(nil))
}

func ids(reqs []models.Request) []uint {
	out := make([]uint, len(reqs))
	for i, r := range reqs {
		out[i] = r.ID
	}
	return out
}
