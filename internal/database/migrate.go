package database

import (
	"fmt"

	"github.com/pageza/nutriai/backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations creates or updates the tables the SQL backends need.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", db.Dialector.Name(), err)
	}
	return nil
}
