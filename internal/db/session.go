package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greencart/console/internal/models"
)

// SaveSession persists the credential pair. Both rows are written in one
// transaction; a partial pair must never exist.
func SaveSession(gdb *gorm.DB, token, userJSON string) error {
	err := gdb.Transaction(func(tx *gorm.DB) error {
		for _, entry := range []models.StateEntry{
			{Key: models.KeyToken, Value: token},
			{Key: models.KeyUser, Value: userJSON},
		} {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("db: save session: %w", err)
	}
	return nil
}

// LoadSession reads the persisted credential pair. ok is false when either
// row is missing.
func LoadSession(gdb *gorm.DB) (token, userJSON string, ok bool, err error) {
	var entries []models.StateEntry
	if err := gdb.Where("key IN ?", []string{models.KeyToken, models.KeyUser}).
		Find(&entries).Error; err != nil {
		return "", "", false, fmt.Errorf("db: load session: %w", err)
	}
	for _, e := range entries {
		switch e.Key {
		case models.KeyToken:
			token = e.Value
		case models.KeyUser:
			userJSON = e.Value
		}
	}
	return token, userJSON, token != "" && userJSON != "", nil
}

// ClearSession removes both credential rows in one transaction.
func ClearSession(gdb *gorm.DB) error {
	err := gdb.Transaction(func(tx *gorm.DB) error {
		return tx.Where("key IN ?", []string{models.KeyToken, models.KeyUser}).
			Delete(&models.StateEntry{}).Error
	})
	if err != nil {
		return fmt.Errorf("db: clear session: %w", err)
	}
	return nil
}

// HasSession reports whether a complete credential pair is persisted.
func HasSession(gdb *gorm.DB) (bool, error) {
	_, _, ok, err := LoadSession(gdb)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return ok, nil
}
