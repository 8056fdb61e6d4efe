package db

import (
	"contact_manager/internal/config" // Custom package for configuration
	"contact_manager/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/gorm" // GORM ORM library
)

// AutoMigrate creates or updates the users, contacts and addresses tables
func AutoMigrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	return db.AutoMigrate(&domain.User{}, &domain.Contact{}, &domain.Address{})
}

// Migrate performs automatic migration for the database schema
func Migrate(cfg *config.Config) {
	db, err := Open(cfg) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.WithField("driver", cfg.DBDriver).Info("Migration completed.") // Log successful migration
}
