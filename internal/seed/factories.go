// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"proctrack/internal/models"
	"proctrack/internal/workflow"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var requestItems = []string{
	"Dell Latitude 5540 laptops (x10)",
	"HP LaserJet Pro printer",
	"Office chairs, ergonomic (x25)",
	"Projector for conference room B",
	"Cisco network switches (x4)",
	"Standing desks (x12)",
	"Diesel generator servicing kit",
	"A4 paper, 80gsm (200 reams)",
	"External hard drives, 2TB (x15)",
	"Air conditioning units (x3)",
	"First aid kits for all floors",
	"Whiteboard markers and erasers",
	"Uninterruptible power supplies (x8)",
	"Fireproof document cabinets (x2)",
	"Microsoft 365 licenses (annual, x50)",
}

var priorities = []models.Priority{
	models.PriorityLow,
	models.PriorityNormal, models.PriorityNormal, models.PriorityNormal,
	models.PriorityHigh,
}

// CreateOfficer persists a procurement officer with a realistic name and
// a matching work email.
func (f *Factory) CreateOfficer() (*models.Officer, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	officer := &models.Officer{
		FirstName: first,
		LastName:  last,
		Email: strings.ToLower(fmt.Sprintf("%s.%s%d@proctrack.gov",
			first, last, f.rng.Intn(1000))),
	}
	if f.rng.Intn(4) == 0 {
		officer.MiddleName = gofakeit.FirstName()
	}
	if err := f.db.Create(officer).Error; err != nil {
		return nil, err
	}
	return officer, nil
}

// CreateUser persists a user account with the given role. All seeded
// accounts share the same development password.
func (f *Factory) CreateUser(role models.Role, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	name := gofakeit.Name()
	user := &models.User{
		Name: name,
		Email: strings.ToLower(fmt.Sprintf("%s%d@example.com",
			strings.ReplaceAll(name, " ", "."), f.rng.Intn(10000))),
		Password: string(hash),
		Role:     role,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (f *Factory) actorName(actors []models.User) string {
	if len(actors) == 0 {
		return gofakeit.Name()
	}
	return actors[f.rng.Intn(len(actors))].Name
}

// CreateRequest persists a request at a random point in its lifecycle,
// with a coherent stage history. Requests past pending-assignment get an
// officer; roughly one in twelve ends up declined or cancelled.
func (f *Factory) CreateRequest(dept models.Department, officers []models.Officer, actors []models.User) (*models.Request, error) {
	stages := workflow.Stages()
	steps := f.rng.Intn(len(stages))

	created := time.Now().Add(-time.Duration(f.rng.Intn(90*24)) * time.Hour)

	req := &models.Request{
		Item:         requestItems[f.rng.Intn(len(requestItems))],
		RequestedBy:  gofakeit.Name(),
		DepartmentID: dept.ID,
		Priority:     priorities[f.rng.Intn(len(priorities))],
		Stage:        models.StagePendingAssignment,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if err := f.db.Create(req).Error; err != nil {
		return nil, err
	}

	events := []models.StageEvent{{
		RequestID: req.ID,
		ToStage:   models.StagePendingAssignment,
		Note:      "request created",
		ActorName: f.actorName(actors),
		CreatedAt: created,
	}}

	at := created
	for i := 1; i <= steps; i++ {
		at = at.Add(time.Duration(1+f.rng.Intn(72)) * time.Hour)
		from := req.Stage
		req.Stage = stages[i]
		if req.Stage == models.StageAssigned && len(officers) > 0 {
			id := officers[f.rng.Intn(len(officers))].ID
			req.AssignedOfficerID = &id
		}
		events = append(events, models.StageEvent{
			RequestID: req.ID,
			FromStage: from,
			ToStage:   req.Stage,
			ActorName: f.actorName(actors),
			CreatedAt: at,
		})
	}

	// Occasionally abandon an in-flight request via an override stage.
	if req.Stage != models.StageCompleted && f.rng.Intn(12) == 0 {
		at = at.Add(time.Duration(1+f.rng.Intn(72)) * time.Hour)
		from := req.Stage
		if f.rng.Intn(2) == 0 {
			req.Stage = models.StageDeclined
		} else {
			req.Stage = models.StageCancelled
		}
		events = append(events, models.StageEvent{
			RequestID: req.ID,
			FromStage: from,
			ToStage:   req.Stage,
			Note:      "no longer needed",
			ActorName: f.actorName(actors),
			CreatedAt: at,
		})
	}

	req.UpdatedAt = at
	if err := f.db.Model(req).Updates(map[string]any{
		"stage":               req.Stage,
		"assigned_officer_id": req.AssignedOfficerID,
		"updated_at":          req.UpdatedAt,
	}).Error; err != nil {
		return nil, err
	}
	if err := f.db.Create(&events).Error; err != nil {
		return nil, err
	}
	return req, nil
}
