package db

import (
	"fmt"

	"github.com/zulandar/tasbih/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Counter{},
		&models.HistoryEntry{},
		&models.LiveProgress{},
	}
}

// AutoMigrate creates or updates all tables of the local store.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
