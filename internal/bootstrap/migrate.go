package bootstrap

import (
	"anoa.com/sccams/internal/entity"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the admin backend owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Student{},
		&entity.Teacher{},
		&entity.Administrator{},
		&entity.Utility{},
		&entity.Appointment{},
	)
}
