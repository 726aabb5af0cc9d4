package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/greencart/console/internal/models"
)

// AllModels returns every GORM model stored in the state file.
func AllModels() []interface{} {
	return []interface{}{
		&models.StateEntry{},
		&models.SimulationRecord{},
	}
}

// AutoMigrate creates or updates the state tables.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
