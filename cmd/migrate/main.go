package main

import (
	"contact_manager/internal/config" // Custom import path (Config)
	"contact_manager/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg)            // Create or update the tables for the configured driver
}
