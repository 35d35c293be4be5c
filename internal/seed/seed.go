package seed

import (
	"fmt"
	"log"

	"proctrack/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumOfficers int
	NumRequests int
	ShouldClean bool
}

// DevPassword is the shared password for all seeded accounts.
const DevPassword = "Proctrack123!"

// Seed populates the database with demo departments, users, officers and
// requests at assorted points in the pipeline.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users, %d officers, %d requests...",
		opts.NumUsers, opts.NumOfficers, opts.NumRequests)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := Departments(db); err != nil {
		return fmt.Errorf("failed to seed departments: %w", err)
	}
	var departments []models.Department
	if err := db.Find(&departments).Error; err != nil {
		return fmt.Errorf("failed to load departments: %w", err)
	}

	f := NewFactory(db)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	officers := make([]models.Officer, 0, opts.NumOfficers)
	for i := 0; i < opts.NumOfficers; i++ {
		officer, err := f.CreateOfficer()
		if err != nil {
			return fmt.Errorf("failed to create officer: %w", err)
		}
		officers = append(officers, *officer)
	}
	log.Printf("%d officers created", len(officers))

	for i := 0; i < opts.NumRequests; i++ {
		dept := departments[f.rng.Intn(len(departments))]
		if _, err := f.CreateRequest(dept, officers, users); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
	}
	log.Printf("%d requests created", opts.NumRequests)

	log.Println("Database seeding completed")
	return nil
}

// createUsers guarantees one account per role before filling the rest
// with general users, so every permission path is reachable after a seed.
func createUsers(f *Factory, count int) ([]models.User, error) {
	roles := []models.Role{
		models.RoleProcurementManager,
		models.RoleProcurementOfficer,
		models.RoleRequestInitiator,
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		role := models.RoleGeneralUser
		if i < len(roles) {
			role = roles[i]
		}
		user, err := f.CreateUser(role, DevPassword)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE stage_events, requests, officers, departments, users RESTART IDENTITY CASCADE;`).Error
	}
	for _, table := range []string{"stage_events", "requests", "officers", "departments", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
