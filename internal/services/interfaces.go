package services

import (
	"time"

	"bondledger/internal/models"
	"bondledger/internal/pagination"
)

// LedgerStore is the narrow storage interface the services depend on.
// *store.Store is the production implementation.
type LedgerStore interface {
	CreateUser(email, username, passwordHash string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	RecordInvestment(userID, bondID uint, investorAddress string, amount float64, timestamp time.Time, transactionHash string) (*models.Investment, error)
	InvestmentsByUser(userID uint) ([]models.Investment, error)
	InvestmentsByWallet(address string) ([]models.Investment, error)
	InvestmentsByBond(bondID uint) ([]models.Investment, error)
	AllInvestments() ([]models.Investment, error)
	InvestmentsPage(req pagination.PageRequest) ([]models.Investment, int64, error)
}

// BondCatalog is the catalog interface the services depend on.
// *catalog.Catalog is the production implementation.
type BondCatalog interface {
	Add(bond models.Bond)
	Get(id uint) (models.Bond, error)
	All() []models.Bond
	Remove(id uint) error
	Update(id uint, patch models.BondPatch) (models.Bond, error)
	Len() int
}

// UserServicer defines the contract for user registration and lookup.
type UserServicer interface {
	RegisterUser(email, username, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// Portfolio is a derived view over one user's or one wallet's investments.
// It is recomputed on every query and never cached, so it always reflects
// the latest committed ledger state. TotalValue equals TotalInvested and
// TotalYield is zero while no market pricing exists.
type Portfolio struct {
	UserID        uint                `json:"user_id,omitempty"`
	Address       string              `json:"address,omitempty"`
	Investments   []models.Investment `json:"investments"`
	Count         int                 `json:"count"`
	TotalInvested float64             `json:"total_invested"`
	TotalValue    float64             `json:"total_value"`
	TotalYield    float64             `json:"total_yield"`
}

// LedgerServicer defines the contract for recording investments and reading
// portfolios. It owns the validation the store deliberately does not do.
type LedgerServicer interface {
	RecordInvestment(userID, bondID uint, investorAddress string, amount float64, timestamp time.Time, transactionHash string) (*models.Investment, error)
	PortfolioForUser(requesterID, userID uint) (*Portfolio, error)
	PortfolioForWallet(address string) (*Portfolio, error)
	InvestmentsForBond(bondID uint) ([]models.Investment, error)
	AllInvestments() ([]models.Investment, error)
	InvestmentsPage(req pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
}

// BondStats contains aggregate figures for one bond.
type BondStats struct {
	BondID          uint    `json:"bond_id"`
	Name            string  `json:"name"`
	TotalInvested   float64 `json:"total_invested"`
	InvestorCount   int     `json:"investor_count"`
	InvestmentCount int     `json:"investment_count"`
	CouponRate      float64 `json:"coupon_rate"`
	FaceValue       float64 `json:"face_value"`
	Utilization     float64 `json:"utilization"`
	DaysToMaturity  int     `json:"days_to_maturity"`
}

// BondBreakdown is the per-bond slice of the platform statistics.
type BondBreakdown struct {
	Name            string  `json:"name"`
	TotalInvested   float64 `json:"total_invested"`
	InvestorCount   int     `json:"investor_count"`
	InvestmentCount int     `json:"investment_count"`
}

// PlatformStats contains platform-wide aggregate figures. Investments whose
// bond has been removed from the catalog still count toward the platform
// totals but are omitted from the per-bond breakdown.
type PlatformStats struct {
	TotalInvested    float64                `json:"total_invested"`
	TotalInvestors   int                    `json:"total_investors"`
	TotalInvestments int                    `json:"total_investments"`
	TotalBonds       int                    `json:"total_bonds"`
	BondStats        map[uint]BondBreakdown `json:"bond_stats"`
}

// StatsServicer defines the contract for aggregate queries. Every call
// re-scans the ledger; a failure mid-scan aborts the whole aggregation
// rather than returning a partial result.
type StatsServicer interface {
	BondStats(bondID uint) (*BondStats, error)
	PlatformStats() (*PlatformStats, error)
}

// YieldCalculation is the derived per-bond yield record. Rates are
// percentages; interest figures are on a fixed 1000-unit notional.
// Investor fields mirror the bond-level figures while positions are not
// scaled per investor.
type YieldCalculation struct {
	BondID                  uint     `json:"bond_id"`
	CouponRate              float64  `json:"coupon_rate"`
	CurrentYield            float64  `json:"current_yield"`
	AnnualInterest          float64  `json:"annual_interest"`
	AccruedInterest         float64  `json:"accrued_interest"`
	DaysToMaturity          int      `json:"days_to_maturity"`
	InvestorYield           *float64 `json:"investor_yield,omitempty"`
	InvestorAccruedInterest *float64 `json:"investor_accrued_interest,omitempty"`
}

// YieldServicer defines the contract for yield calculations.
type YieldServicer interface {
	Calculate(bond models.Bond, investorAddress string) (*YieldCalculation, error)
}
