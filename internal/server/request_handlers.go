package server

import (
	"proctrack/internal/models"
	"proctrack/internal/service"
	"proctrack/internal/workflow"

	"github.com/gofiber/fiber/v2"
)

type createRequestBody struct {
	Item         string          `json:"item"`
	RequestedBy  string          `json:"requested_by"`
	DepartmentID uint            `json:"department_id"`
	Priority     models.Priority `json:"priority"`
}

type editRequestBody struct {
	Item         *string          `json:"item"`
	RequestedBy  *string          `json:"requested_by"`
	DepartmentID *uint            `json:"department_id"`
	Priority     *models.Priority `json:"priority"`
}

type transitionBody struct {
	Stage     models.Stage `json:"stage"`
	OfficerID *uint        `json:"officer_id"`
	Note      string       `json:"note"`
}

type overrideBody struct {
	Stage models.Stage `json:"stage"`
	Note  string       `json:"note"`
}

// GetRequests lists requests, filtered and sorted by query parameters.
func (s *Server) GetRequests(c *fiber.Ctx) error {
	criteria := workflow.Criteria{
		Search:   c.Query("search"),
		Stage:    models.Stage(c.Query("stage")),
		Priority: models.Priority(c.Query("priority")),
		Officer:  c.Query("officer"),
	}
	sortKey := workflow.SortKey(c.Query("sort", string(workflow.SortCreatedAt)))

	requests, err := s.requestService.List(c.Context(), criteria, sortKey)
	if err != nil {
		return respondServiceError(c, err)
	}

	page := parsePagination(c)
	total := len(requests)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return c.JSON(fiber.Map{
		"requests": requests[start:end],
		"total":    total,
		"limit":    page.Limit,
		"offset":   page.Offset,
	})
}

// GetRequest returns a single request by ID.
func (s *Server) GetRequest(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	req, err := s.requestService.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(req)
}

// CreateRequest opens a new procurement request.
func (s *Server) CreateRequest(c *fiber.Ctx) error {
	var body createRequestBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req, err := s.requestService.Create(c.Context(), service.CreateRequestInput{
		Item:         body.Item,
		RequestedBy:  body.RequestedBy,
		DepartmentID: body.DepartmentID,
		Priority:     body.Priority,
		ActorName:    actorName(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// PatchRequest updates request metadata without touching its stage.
func (s *Server) PatchRequest(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var body editRequestBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req, err := s.requestService.Edit(c.Context(), service.EditRequestInput{
		ID:           id,
		Item:         body.Item,
		RequestedBy:  body.RequestedBy,
		DepartmentID: body.DepartmentID,
		Priority:     body.Priority,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(req)
}

// DeleteRequest removes a request and its history.
func (s *Server) DeleteRequest(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.requestService.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request deleted"})
}

// TransitionRequest moves a request through the pipeline.
func (s *Server) TransitionRequest(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var body transitionBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req, err := s.requestService.Transition(c.Context(), service.TransitionInput{
		ID:        id,
		Target:    body.Stage,
		OfficerID: body.OfficerID,
		ActorName: actorName(c),
		Note:      body.Note,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(req)
}

// OverrideRequest moves a request to a terminal override stage.
func (s *Server) OverrideRequest(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var body overrideBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req, err := s.requestService.Override(c.Context(), service.OverrideInput{
		ID:        id,
		Target:    body.Stage,
		ActorName: actorName(c),
		Note:      body.Note,
		ActorID:   actorID(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(req)
}

// GetNextStages lists the stages a request may legally move to.
func (s *Server) GetNextStages(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	stages, err := s.requestService.NextStages(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"stages": stages})
}

// GetRequestHistory returns the stage event log for a request.
func (s *Server) GetRequestHistory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	events, err := s.requestService.History(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"history": events})
}

// GetRequestStats returns aggregate counts across all requests.
func (s *Server) GetRequestStats(c *fiber.Ctx) error {
	stats, err := s.requestService.Stats(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// GetStages returns the ordered stage catalog.
func (s *Server) GetStages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stages": workflow.StageInfos()})
}
