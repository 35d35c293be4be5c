package workflow

import (
	"sort"
	"strconv"
	"strings"

	"proctrack/internal/models"
)

// OfficerUnassigned is the reserved officer filter value matching requests
// with no assigned officer.
const OfficerUnassigned = "unassigned"

// Criteria narrows a collection of requests. Zero-valued fields are no-op
// filters; set fields combine with logical AND.
type Criteria struct {
	Search   string
	Stage    models.Stage
	Priority models.Priority
	Officer  string // officer ID, or OfficerUnassigned
}

// Filter returns the requests matching all set criteria, preserving input
// order. Search is a case-insensitive substring match against the item, the
// requester name, or the formatted requisition number.
func Filter(reqs []models.Request, c Criteria) []models.Request {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]models.Request, 0, len(reqs))
	for _, r := range reqs {
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Item), search) &&
			!strings.Contains(strings.ToLower(r.RequestedBy), search) &&
			!strings.Contains(r.ReqNumber(), search) {
			continue
		}
		if c.Stage != "" && r.Stage != c.Stage {
			continue
		}
		if c.Priority != "" && r.Priority != c.Priority {
			continue
		}
		if c.Officer != "" && !officerMatches(r, c.Officer) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func officerMatches(r models.Request, officer string) bool {
	if officer == OfficerUnassigned {
		return r.AssignedOfficerID == nil
	}
	if r.AssignedOfficerID == nil {
		return false
	}
	return strconv.FormatUint(uint64(*r.AssignedOfficerID), 10) == officer
}

// SortKey selects a request ordering.
type SortKey string

const (
	SortCreatedAt SortKey = "createdAt" // newest first
	SortUpdatedAt SortKey = "updatedAt" // most recently touched first
	SortPriority  SortKey = "priority"  // highest urgency first
	SortStage     SortKey = "stage"     // stage identifier, ascending
)

// SortBy returns a sorted copy of reqs. The sort is stable: requests that
// compare equal keep their relative input order, which matters because many
// share a creation timestamp at second granularity.
func SortBy(reqs []models.Request, key SortKey) []models.Request {
	out := make([]models.Request, len(reqs))
	copy(out, reqs)

	switch key {
	case SortCreatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortUpdatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	case SortStage:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Stage < out[j].Stage
		})
	}
	return out
}

// Stats summarizes a collection of requests for the dashboard.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Urgent    int `json:"urgent"`
}

// ComputeStats counts requests by dashboard bucket. Every linear stage short
// of completed counts as pending; override stages count toward the total
// only. Urgent counts the highest priority tier.
func ComputeStats(reqs []models.Request) Stats {
	s := Stats{Total: len(reqs)}
	for _, r := range reqs {
		switch {
		case r.Stage == models.StageCompleted:
			s.Completed++
		case PositionOf(r.Stage) >= 0:
			s.Pending++
		}
		if r.Priority.Urgent() {
			s.Urgent++
		}
	}
	return s
}
