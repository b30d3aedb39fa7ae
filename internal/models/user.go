package models

// User represents a registered investor. Email and username are stored
// lowercased so the database unique indexes enforce case-insensitive
// uniqueness atomically with the insert.
type User struct {
	Base
	Email         string       `gorm:"uniqueIndex;not null" json:"email"`
	Username      string       `gorm:"uniqueIndex;not null" json:"username"`
	Password      string       `gorm:"not null" json:"-"`
	WalletAddress string       `json:"wallet_address,omitempty"`
	Investments   []Investment `gorm:"foreignKey:UserID" json:"investments,omitempty"`
}
