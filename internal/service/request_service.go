// Package service holds the business logic between handlers and repositories.
package service

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"proctrack/internal/featureflags"
	"proctrack/internal/models"
	"proctrack/internal/observability"
	"proctrack/internal/repository"
	"proctrack/internal/validation"
	"proctrack/internal/workflow"
)

// RequestService owns the procurement request lifecycle.
type RequestService struct {
	requests repository.RequestRepository
	depts    repository.DepartmentRepository
	engine   *workflow.Engine
	flags    *featureflags.Manager
	now      func() time.Time
}

// NewRequestService wires the request service with its dependencies.
func NewRequestService(
	requests repository.RequestRepository,
	officers workflow.OfficerDirectory,
	depts repository.DepartmentRepository,
	flags *featureflags.Manager,
) *RequestService {
	return &RequestService{
		requests: requests,
		depts:    depts,
		engine:   workflow.NewEngine(officers),
		flags:    flags,
		now:      time.Now,
	}
}

// CreateRequestInput carries the fields for a new procurement request.
type CreateRequestInput struct {
	Item         string
	RequestedBy  string
	DepartmentID uint
	Priority     models.Priority
	ActorName    string
}

// Create opens a new request at the start of the pipeline.
func (s *RequestService) Create(ctx context.Context, in CreateRequestInput) (*models.Request, error) {
	if err := validation.ValidateItem(in.Item); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Priority == "" {
		in.Priority = models.PriorityNormal
	}
	if err := validation.ValidatePriority(in.Priority); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.DepartmentID != 0 {
		if _, err := s.depts.GetByID(ctx, in.DepartmentID); err != nil {
			return nil, err
		}
	}

	req := &models.Request{
		Item:         in.Item,
		RequestedBy:  in.RequestedBy,
		DepartmentID: in.DepartmentID,
		Priority:     in.Priority,
		Stage:        models.StagePendingAssignment,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	_ = s.requests.AppendEvent(ctx, &models.StageEvent{
		RequestID: req.ID,
		ToStage:   models.StagePendingAssignment,
		ActorName: in.ActorName,
		Note:      "request created",
		CreatedAt: s.now(),
	})

	return req, nil
}

// List returns requests matching the criteria, ordered by the sort key.
func (s *RequestService) List(ctx context.Context, criteria workflow.Criteria, sortKey workflow.SortKey) ([]models.Request, error) {
	reqs, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := workflow.Filter(reqs, criteria)
	return workflow.SortBy(filtered, sortKey), nil
}

// Get returns one request by ID.
func (s *RequestService) Get(ctx context.Context, id uint) (*models.Request, error) {
	return s.requests.GetByID(ctx, id)
}

// History returns the stage change log for a request, oldest first.
func (s *RequestService) History(ctx context.Context, id uint) ([]models.StageEvent, error) {
	if _, err := s.requests.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.requests.ListEvents(ctx, id)
}

// NextStages returns the stages the request may legally move to,
// including its current stage, with display metadata.
func (s *RequestService) NextStages(ctx context.Context, id uint) ([]workflow.StageInfo, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stages := workflow.AvailableNextStages(req.Stage)
	infos := make([]workflow.StageInfo, 0, len(stages))
	for _, stage := range stages {
		infos = append(infos, workflow.DisplayInfoFor(stage))
	}
	return infos, nil
}

// TransitionInput carries a stage change attempt.
type TransitionInput struct {
	ID        uint
	Target    models.Stage
	OfficerID *uint
	ActorName string
	Note      string
}

// Transition moves a request to the target stage if the move is legal,
// recording the change in the request's history.
func (s *RequestService) Transition(ctx context.Context, in TransitionInput) (*models.Request, error) {
	span, ctx := observability.NewSpan(ctx, "workflow.transition")
	defer span.End()
	span.AddAttributes(
		attribute.Int("request.id", int(in.ID)),
		attribute.String("stage.target", string(in.Target)),
	)

	req, err := s.requests.GetByID(ctx, in.ID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	from := req.Stage
	updated, err := s.engine.Apply(ctx, *req, in.Target, in.OfficerID, s.now())
	if err != nil {
		span.SetError(err)
		observability.RecordRejectedTransition(models.ErrorCodeOf(err))
		return nil, err
	}

	if err := s.requests.Update(ctx, &updated, req.UpdatedAt); err != nil {
		return nil, err
	}

	if from != updated.Stage {
		_ = s.requests.AppendEvent(ctx, &models.StageEvent{
			RequestID: updated.ID,
			FromStage: from,
			ToStage:   updated.Stage,
			ActorName: in.ActorName,
			Note:      in.Note,
			CreatedAt: updated.UpdatedAt,
		})
		observability.RecordTransition(string(from), string(updated.Stage))
	}

	return &updated, nil
}

// OverrideInput carries a decline or cancel action.
type OverrideInput struct {
	ID        uint
	Target    models.Stage
	ActorName string
	Note      string
	ActorID   uint
}

// Override moves a request to a terminal override stage (declined or
// cancelled), outside the normal pipeline. The admin_override flag must
// be enabled for the acting user.
func (s *RequestService) Override(ctx context.Context, in OverrideInput) (*models.Request, error) {
	if !s.flags.Enabled("admin_override", in.ActorID) {
		return nil, models.NewUnauthorizedError("override is not enabled")
	}

	span, ctx := observability.NewSpan(ctx, "workflow.override")
	defer span.End()
	span.AddAttributes(
		attribute.Int("request.id", int(in.ID)),
		attribute.String("stage.target", string(in.Target)),
	)

	req, err := s.requests.GetByID(ctx, in.ID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	from := req.Stage
	updated, err := workflow.Override(*req, in.Target, s.now())
	if err != nil {
		span.SetError(err)
		observability.RecordRejectedTransition(models.ErrorCodeOf(err))
		return nil, err
	}

	if err := s.requests.Update(ctx, &updated, req.UpdatedAt); err != nil {
		return nil, err
	}

	_ = s.requests.AppendEvent(ctx, &models.StageEvent{
		RequestID: updated.ID,
		FromStage: from,
		ToStage:   updated.Stage,
		ActorName: in.ActorName,
		Note:      in.Note,
		CreatedAt: updated.UpdatedAt,
	})
	observability.RecordTransition(string(from), string(updated.Stage))

	return &updated, nil
}

// EditRequestInput carries partial metadata edits. Nil fields are left
// untouched; the stage and officer cannot be edited here.
type EditRequestInput struct {
	ID           uint
	Item         *string
	RequestedBy  *string
	DepartmentID *uint
	Priority     *models.Priority
}

// Edit updates request metadata without touching lifecycle state.
func (s *RequestService) Edit(ctx context.Context, in EditRequestInput) (*models.Request, error) {
	req, err := s.requests.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	guard := req.UpdatedAt
	if in.Item != nil {
		if err := validation.ValidateItem(*in.Item); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		req.Item = *in.Item
	}
	if in.RequestedBy != nil {
		req.RequestedBy = *in.RequestedBy
	}
	if in.DepartmentID != nil {
		if *in.DepartmentID != 0 {
			if _, err := s.depts.GetByID(ctx, *in.DepartmentID); err != nil {
				return nil, err
			}
			req.DepartmentID = *in.DepartmentID
		} else {
			req.DepartmentID = 0
		}
	}
	if in.Priority != nil {
		if err := validation.ValidatePriority(*in.Priority); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		req.Priority = *in.Priority
	}

	req.UpdatedAt = s.now()
	if err := s.requests.Update(ctx, req, guard); err != nil {
		return nil, err
	}
	return req, nil
}

// Stats returns the dashboard counters over all requests.
func (s *RequestService) Stats(ctx context.Context) (workflow.Stats, error) {
	reqs, err := s.requests.List(ctx)
	if err != nil {
		return workflow.Stats{}, err
	}

	counts := make(map[models.Stage]int, len(reqs))
	for _, r := range reqs {
		counts[r.Stage]++
	}
	for _, st := range workflow.Stages() {
		observability.SetRequestsByStage(string(st), counts[st])
	}
	observability.SetRequestsByStage(string(models.StageDeclined), counts[models.StageDeclined])
	observability.SetRequestsByStage(string(models.StageCancelled), counts[models.StageCancelled])

	return workflow.ComputeStats(reqs), nil
}

// Delete removes a request and its history.
func (s *RequestService) Delete(ctx context.Context, id uint) error {
	return s.requests.Delete(ctx, id)
}

// TrackResult is the public view of a request's progress.
type TrackResult struct {
	Request *models.Request      `json:"request"`
	Stage   workflow.StageInfo   `json:"stage"`
	History []models.StageEvent  `json:"history"`
	Stages  []workflow.StageInfo `json:"stages"`
}

// Track resolves a requisition number (e.g. "003") to its request and
// progress, for the public tracking page.
func (s *RequestService) Track(ctx context.Context, reqNumber string) (*TrackResult, error) {
	id, err := strconv.ParseUint(reqNumber, 10, 32)
	if err != nil || id == 0 {
		return nil, models.NewValidationError("invalid requisition number")
	}

	req, err := s.requests.GetByID(ctx, uint(id))
	if err != nil {
		return nil, err
	}
	history, err := s.requests.ListEvents(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &TrackResult{
		Request: req,
		Stage:   workflow.DisplayInfoFor(req.Stage),
		History: history,
		Stages:  workflow.StageInfos(),
	}, nil
}
