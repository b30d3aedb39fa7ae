package models

import "time"

// Investment is one row of the append-only ledger. BondID references the
// in-memory bond catalog, not a database table, so readers must tolerate
// rows whose bond has since been removed from the catalog.
type Investment struct {
	Base
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	BondID          uint      `gorm:"not null;index" json:"bond_id"`
	InvestorAddress string    `gorm:"not null;index" json:"investor_address"`
	Amount          float64   `gorm:"not null" json:"amount"`
	Timestamp       time.Time `gorm:"not null" json:"timestamp"`
	TransactionHash string    `json:"transaction_hash,omitempty"`
}
