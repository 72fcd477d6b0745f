package database

import (
	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.OTP{},
		&models.PasswordReset{},
		&models.Job{},
		&models.Application{},
	)
}
