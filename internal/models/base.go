package models

import "time"

// Base contains the common columns for all ledger tables. Ledger rows are
// append-only, so there is no update or soft-delete column: the id is
// assigned by the store on insert and the row is immutable afterward.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
