package database

import "proctrack/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Department{},
		&models.Officer{},
		&models.Request{},
		&models.StageEvent{},
	}
}
