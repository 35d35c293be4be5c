package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"proctrack/internal/config"
	"proctrack/internal/featureflags"
	"proctrack/internal/models"
	"proctrack/internal/repository"
	"proctrack/internal/service"
	"proctrack/internal/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newAPITestServer builds a sqlite-backed server with all request routes
// mounted. Every request is treated as an authenticated procurement
// manager named "Test Manager" so each handler is reachable.
func newAPITestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	flags := featureflags.NewManager("admin_override=on")
	requestRepo := repository.NewRequestRepository(db)
	officerRepo := repository.NewOfficerRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)

	s := &Server{
		config:            &config.Config{JWTSecret: "test-secret-that-is-long-enough"},
		db:                db,
		featureFlags:      flags,
		userRepo:          repository.NewUserRepository(db),
		requestService:    service.NewRequestService(requestRepo, officerRepo, deptRepo, flags),
		officerService:    service.NewOfficerService(officerRepo),
		departmentService: service.NewDepartmentService(deptRepo),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		c.Locals("userRole", models.RoleProcurementManager)
		c.Locals("userName", "Test Manager")
		return c.Next()
	})

	app.Get("/requests", s.GetRequests)
	app.Post("/requests", s.CreateRequest)
	app.Get("/requests/stats", s.GetRequestStats)
	app.Get("/requests/:id/history", s.GetRequestHistory)
	app.Get("/requests/:id/next-stages", s.GetNextStages)
	app.Post("/requests/:id/transition", s.TransitionRequest)
	app.Post("/requests/:id/override", s.OverrideRequest)
	app.Put("/requests/:id", s.PatchRequest)
	app.Delete("/requests/:id", s.DeleteRequest)
	app.Get("/requests/:id", s.GetRequest)
	app.Get("/track/:reqNumber", s.TrackRequest)
	app.Get("/stages", s.GetStages)

	app.Get("/officers", s.GetOfficers)
	app.Post("/officers", s.CreateOfficer)
	app.Put("/officers/:id", s.UpdateOfficer)
	app.Delete("/officers/:id", s.DeleteOfficer)
	app.Get("/officers/:id", s.GetOfficer)

	app.Get("/departments", s.GetDepartments)
	app.Post("/departments", s.CreateDepartment)

	return s, app, db
}

func seedDepartment(t *testing.T, db *gorm.DB, name string) models.Department {
	t.Helper()
	dept := models.Department{Name: name}
	require.NoError(t, db.Create(&dept).Error)
	return dept
}

func seedOfficer(t *testing.T, db *gorm.DB, email string) models.Officer {
	t.Helper()
	officer := models.Officer{FirstName: "Kemi", LastName: "Adeyemi", Email: email}
	require.NoError(t, db.Create(&officer).Error)
	return officer
}

func createRequestVia(t *testing.T, app *fiber.App, deptID uint) models.Request {
	t.Helper()
	resp := postJSON(t, app, "/requests", map[string]any{
		"item":          "Dell Latitude laptops",
		"requested_by":  "Funke Akindele",
		"department_id": deptID,
		"priority":      "high",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var req models.Request
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&req))
	return req
}

func TestCreateRequestHandler(t *testing.T) {
	t.Parallel()
	_, app, db := newAPITestServer(t)
	dept := seedDepartment(t, db, "Engineering")

	t.Run("success", func(t *testing.T) {
		req := createRequestVia(t, app, dept.ID)
		assert.Equal(t, models.StagePendingAssignment, req.Stage)
		assert.Equal(t, models.PriorityHigh, req.Priority)
		assert.NotZero(t, req.ID)
	})

	t.Run("blank item", func(t *testing.T) {
		resp := postJSON(t, app, "/requests", map[string]any{
			"item":          "   ",
			"requested_by":  "Funke Akindele",
			"department_id": dept.ID,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown department", func(t *testing.T) {
		resp := postJSON(t, app, "/requests", map[string]any{
			"item":          "Projector",
			"requested_by":  "Funke Akindele",
			"department_id": 9999,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTransitionHandler(t *testing.T) {
	t.Parallel()
	_, app, db := newAPITestServer(t)
	dept := seedDepartment(t, db, "Operations")
	officer := seedOfficer(t, db, "kemi@agency.gov")
	req := createRequestVia(t, app, dept.ID)

	path := fmt.Sprintf("/requests/%d/transition", req.ID)

	t.Run("assign requires officer", func(t *testing.T) {
		resp := postJSON(t, app, path, map[string]any{
			"stage": "assigned-to-officer",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("assign with officer", func(t *testing.T) {
		resp := postJSON(t, app, path, map[string]any{
			"stage":     "assigned-to-officer",
			"officer_id": officer.ID,
			"note":       "taking this one",
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Request
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
		assert.Equal(t, models.StageAssigned, updated.Stage)
		require.NotNil(t, updated.AssignedOfficerID)
		assert.Equal(t, officer.ID, *updated.AssignedOfficerID)
	})

	t.Run("skipping ahead is rejected", func(t *testing.T) {
		resp := postJSON(t, app, path, map[string]any{
			"stage": "finance-approval",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown request", func(t *testing.T) {
		resp := postJSON(t, app, "/requests/9999/transition", map[string]any{
			"stage": "assigned-to-officer",
		}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestOverrideHandler(t *testing.T) {
	t.Parallel()
	_, app, db := newAPITestServer(t)
	dept := seedDepartment(t, db, "Finance")
	req := createRequestVia(t, app, dept.ID)

	path := fmt.Sprintf("/requests/%d/override", req.ID)

	t.Run("linear target rejected", func(t *testing.T) {
		resp := postJSON(t, app, path, map[string]any{
			"stage": "completed",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("decline", func(t *testing.T) {
		resp := postJSON(t, app, path, map[string]any{
			"stage": "declined",
			"note":   "budget exhausted",
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Request
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
		assert.Equal(t, models.StageDeclined, updated.Stage)
	})
}

func TestNextStagesAndHistoryHandlers(t *testing.T) {
	t.Parallel()
	_, app, db := newAPITestServer(t)
	dept := seedDepartment(t, db, "Legal")
	req := createRequestVia(t, app, dept.ID)

	t.Run("next stages", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/requests/%d/next-stages", req.ID), nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Stages []workflow.StageInfo `json:"stages"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		// From the first stage: the stage itself plus one step forward.
		require.Len(t, body.Stages, 2)
		assert.Equal(t, models.StagePendingAssignment, body.Stages[0].Stage)
		assert.Equal(t, models.StageAssigned, body.Stages[1].Stage)
	})

	t.Run("history records creation", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/requests/%d/history", req.ID), nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			History []models.StageEvent `json:"history"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.History, 1)
		assert.Equal(t, "Test Manager", body.History[0].ActorName)
	})

	t.Run("history of unknown request", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/requests/9999/history", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListAndStatsHandlers(t *testing.T) {
	t.Parallel()
	_, app, db := newAPITestServer(t)
	dept := seedDepartment(t, db, "Procurement")
	createRequestVia(t, app, dept.ID)
	createRequestVia(t, app, dept.ID)

	t.Run("list", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/requests?priority=high", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Requests []models.Request `json:"requests"`
			Total    int              `json:"total"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 2, body.Total)
		assert.Len(t, body.Requests, 2)
	})

	t.Run("list with pagination", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/requests?limit=1", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Requests []models.Request `json:"requests"`
			Total    int              `json:"total"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 2, body.Total)
		assert.Len(t, body.Requests, 1)
	})

	t.Run("stats", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/requests/stats", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stats workflow.Stats
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		assert.Equal(t, 2, stats.Total)
		assert.Equal(t, 2, stats.Pending)
	})
}

func TestPatchAndDeleteHandlers(t *testing.T) {
	t.Parallel()
	_, app, db := newAPITestServer(t)
	dept := seedDepartment(t, db, "Facilities")
	req := createRequestVia(t, app, dept.ID)

	t.Run("patch item", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]any{"item": "Standing desks"})
		httpReq := httptest.NewRequest(http.MethodPut,
			fmt.Sprintf("/requests/%d", req.ID), bytes.NewReader(payload))
		httpReq.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(httpReq, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Request
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
		assert.Equal(t, "Standing desks", updated.Item)
	})

	t.Run("delete", func(t *testing.T) {
		httpReq := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/requests/%d", req.ID), nil)
		resp, err := app.Test(httpReq, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		getResp, err := app.Test(httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/requests/%d", req.ID), nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}

func TestTrackHandler(t *testing.T) {
	t.Parallel()
	_, app, db := newAPITestServer(t)
	dept := seedDepartment(t, db, "IT")
	req := createRequestVia(t, app, dept.ID)

	t.Run("found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/track/%03d", req.ID), nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.TrackResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, req.ID, result.Request.ID)
		assert.Len(t, result.Stages, 9)
		assert.Len(t, result.History, 1)
	})

	t.Run("malformed number", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/track/abc", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown number", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/track/999", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetStagesHandler(t *testing.T) {
	t.Parallel()
	_, app, _ := newAPITestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/stages", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Stages []workflow.StageInfo `json:"stages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Stages, 9)
	assert.Equal(t, models.StagePendingAssignment, body.Stages[0].Stage)
	assert.Equal(t, models.StageCompleted, body.Stages[8].Stage)
}
