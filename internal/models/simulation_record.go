package models

import "time"

// SimulationRecord caches one fetched simulation result so the dashboard can
// render the last known run while the service is unreachable. Payload is the
// raw JSON body as the service sent it.
type SimulationRecord struct {
	ID        string    `gorm:"primaryKey;size:64"`
	RunAt     time.Time `gorm:"index"`
	Payload   string    `gorm:"type:text"`
	FetchedAt time.Time
}
