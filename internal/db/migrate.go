package db

import (
	"fmt"

	"github.com/crocobrasseur/website/internal/models"
	"github.com/crocobrasseur/website/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates all tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.Admin{},
		&models.ActivityLog{},
		&models.GalleryImage{},
		&models.Video{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Reservation{},
		&models.Contact{},
		&models.NewsletterSubscriber{},
		&models.CateringRequest{},
		&models.Event{},
	)
}

// SeedDefaultAdmin creates the initial super admin account when no admin
// exists yet. Accounts are otherwise provisioned out of band; there is no
// self-registration.
func SeedDefaultAdmin(conn *gorm.DB, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if errCount := conn.Model(&models.Admin{}).Count(&count).Error; errCount != nil {
		return fmt.Errorf("db: count admins: %w", errCount)
	}
	if count > 0 {
		return nil
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		return fmt.Errorf("db: hash seed password: %w", errHash)
	}

	admin := models.Admin{
		Username: username,
		Password: hash,
		Email:    email,
		Role:     models.RoleSuperAdmin,
		Active:   true,
	}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		return fmt.Errorf("db: seed admin: %w", errCreate)
	}

	log.Infof("seeded default super admin %q", username)
	return nil
}
