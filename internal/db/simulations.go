package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greencart/console/internal/fleet"
	"github.com/greencart/console/internal/models"
)

// UpsertSimulation caches a simulation result payload by id.
func UpsertSimulation(gdb *gorm.DB, result fleet.SimulationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("db: encode simulation %s: %w", result.ID, err)
	}
	rec := models.SimulationRecord{
		ID:        result.ID,
		RunAt:     result.CreatedAt,
		Payload:   string(payload),
		FetchedAt: time.Now().UTC(),
	}
	if err := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"run_at", "payload", "fetched_at"}),
	}).Create(&rec).Error; err != nil {
		return fmt.Errorf("db: cache simulation %s: %w", result.ID, err)
	}
	return nil
}

// LatestSimulation returns the most recent cached result, or ok=false when
// the cache is empty.
func LatestSimulation(gdb *gorm.DB) (fleet.SimulationResult, bool, error) {
	var rec models.SimulationRecord
	err := gdb.Order("run_at DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fleet.SimulationResult{}, false, nil
	}
	if err != nil {
		return fleet.SimulationResult{}, false, fmt.Errorf("db: latest simulation: %w", err)
	}
	return decodeRecord(rec)
}

// SimulationByID returns one cached result, or ok=false when absent.
func SimulationByID(gdb *gorm.DB, id string) (fleet.SimulationResult, bool, error) {
	var rec models.SimulationRecord
	err := gdb.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fleet.SimulationResult{}, false, nil
	}
	if err != nil {
		return fleet.SimulationResult{}, false, fmt.Errorf("db: simulation %s: %w", id, err)
	}
	return decodeRecord(rec)
}

// SimulationHistory returns cached results newest first, capped at limit
// (0 means no cap).
func SimulationHistory(gdb *gorm.DB, limit int) ([]fleet.SimulationResult, error) {
	q := gdb.Order("run_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []models.SimulationRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("db: simulation history: %w", err)
	}
	out := make([]fleet.SimulationResult, 0, len(recs))
	for _, rec := range recs {
		res, ok, err := decodeRecord(rec)
		if err != nil || !ok {
			continue // a corrupt cache row is skipped, not fatal
		}
		out = append(out, res)
	}
	return out, nil
}

func decodeRecord(rec models.SimulationRecord) (fleet.SimulationResult, bool, error) {
	var res fleet.SimulationResult
	if err := json.Unmarshal([]byte(rec.Payload), &res); err != nil {
		return fleet.SimulationResult{}, false, fmt.Errorf("db: decode cached simulation %s: %w", rec.ID, err)
	}
	return res, true, nil
}
