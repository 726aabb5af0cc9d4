package models

import "time"

// Credential state keys. The pair is always written and cleared together;
// db.SaveSession and db.ClearSession are the only writers.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// StateEntry is one row of the operator's persisted key/value state,
// the console's stand-in for browser local storage.
type StateEntry struct {
	Key       string `gorm:"primaryKey;size:32"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
