package workflow

import (
	"context"
	"time"

	"proctrack/internal/models"
)

// OfficerDirectory resolves officer IDs during assignment. It is satisfied by
// the officer repository; FindByID returns (nil, nil) when the ID is unknown.
type OfficerDirectory interface {
	FindByID(ctx context.Context, id uint) (*models.Officer, error)
}

// Engine applies stage transitions to requests. It is the only legitimate
// path by which a request's stage changes.
type Engine struct {
	officers OfficerDirectory
}

// NewEngine returns an Engine backed by the given officer directory.
func NewEngine(officers OfficerDirectory) *Engine {
	return &Engine{officers: officers}
}

// AvailableNextStages returns the stages legally reachable from current:
// every earlier stage plus the current one (regression is unrestricted) and
// at most one step forward. An unrecognized stage yields the full linear
// catalog so a request stuck on bad data can be recovered to any stage.
func AvailableNextStages(current models.Stage) []models.Stage {
	p := PositionOf(current)
	if p < 0 {
		return Stages()
	}

	out := make([]models.Stage, 0, p+2)
	out = append(out, linearStages[:p+1]...)
	if p < len(linearStages)-1 {
		out = append(out, linearStages[p+1])
	}
	return out
}

// Apply moves req to target, enforcing the transition rule and the officer
// assignment precondition. It operates on a copy: on error the caller's
// request is returned unchanged, so there are never partial effects.
//
// Assigning to an officer requires a resolvable officer ID. Transitions to
// any other stage leave a previously assigned officer untouched.
func (e *Engine) Apply(ctx context.Context, req models.Request, target models.Stage, officerID *uint, now time.Time) (models.Request, error) {
	allowed := false
	for _, s := range AvailableNextStages(req.Stage) {
		if s == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return req, models.NewIllegalTransitionError(req.Stage, target)
	}

	if target == models.StageAssigned {
		if officerID == nil {
			return req, models.NewMissingAssignmentError()
		}
		officer, err := e.officers.FindByID(ctx, *officerID)
		if err != nil {
			return req, err
		}
		if officer == nil {
			return req, models.NewUnknownOfficerError(*officerID)
		}
		req.AssignedOfficerID = officerID
		req.Officer = officer
	}

	req.Stage = target
	req.UpdatedAt = now
	return req, nil
}

// Override moves req to a terminal override stage (declined or cancelled).
// It bypasses the step-wise rule but refuses to touch a request that is
// already terminal. Callers gate this behind manager-level policy.
func Override(req models.Request, target models.Stage, now time.Time) (models.Request, error) {
	if !IsOverrideStage(target) {
		return req, models.NewValidationError("override target must be declined or cancelled")
	}
	if IsTerminal(req.Stage) {
		return req, models.NewIllegalTransitionError(req.Stage, target)
	}

	req.Stage = target
	req.UpdatedAt = now
	return req, nil
}
