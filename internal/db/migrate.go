package db

import (
	"gorm.io/gorm"

	"github.com/crmkit/go-crm/gate"
	"github.com/crmkit/go-crm/internal/models"
)

// Migrate runs AutoMigrate for all models. Called at startup or via
// the -migrate-only flag.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.FollowUp{},
		&models.Product{},
		&models.Quotation{},
		&models.Invoice{},
	)
}

// Seed creates the default admin account when no user with that name
// exists yet. Safe to call on every startup.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	admin := models.User{Username: "admin", Role: gate.RoleAdmin}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}
	return db.Create(&admin).Error
}
