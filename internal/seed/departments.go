package seed

import (
	"proctrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInDepartments is the fixed set of departments requests are filed
// under. Seeding is idempotent, so it can run on every startup.
var BuiltInDepartments = []string{
	"IT Department",
	"Finance Department",
	"Human Resources",
	"Operations",
	"Marketing",
	"Sales",
	"Administration",
	"Legal",
	"Customer Service",
}

// Departments seeds the built-in department list.
func Departments(db *gorm.DB) error {
	for _, name := range BuiltInDepartments {
		dept := models.Department{Name: name}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&dept).Error; err != nil {
			return err
		}
	}
	return nil
}
