// Package bootstrap wires shared runtime dependencies for the binaries.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"proctrack/internal/cache"
	"proctrack/internal/config"
	"proctrack/internal/database"
	"proctrack/internal/models"
	"proctrack/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis and optionally seeds the built-in
// departments. The Redis client may be nil when the store is unreachable;
// the application degrades without it.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevManager(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development manager: %w", err)
	}

	if opts.SeedBuiltIns {
		if err := seed.Departments(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in departments: %w", err)
		}
	}

	return db, r, nil
}

// ensureDevManager guarantees a procurement manager account exists under
// the development profile so the role-gated endpoints are reachable on a
// fresh database.
func ensureDevManager(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") {
		return nil
	}

	const email = "manager@proctrack.local"

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.DevPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash manager password: %w", err)
	}

	manager := models.User{
		Name:     "Dev Manager",
		Email:    email,
		Password: string(hash),
		Role:     models.RoleProcurementManager,
	}
	if err := db.Create(&manager).Error; err != nil {
		return err
	}

	log.Printf("development manager account ensured (%s)", email)
	return nil
}
