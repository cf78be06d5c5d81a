package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table the engine
// touches. Used by cmd/seed, the e2e suite, and optionally cmd/api.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&skillModel{},
		&timeSlotModel{},
		&bookingModel{},
		&swapAgreementModel{},
		&notificationModel{},
		&reviewModel{},
	)
}
