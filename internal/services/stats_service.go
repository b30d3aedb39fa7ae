package services

import (
	"strings"
	"time"
)

// statsService derives aggregate views from the ledger on demand. Nothing
// is materialized: every call re-scans the store's current snapshot, so the
// figures are always consistent with the latest committed ledger state.
type statsService struct {
	store   LedgerStore
	catalog BondCatalog
	now     func() time.Time
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(store LedgerStore, catalog BondCatalog) StatsServicer {
	return &statsService{store: store, catalog: catalog, now: time.Now}
}

// BondStats computes aggregate figures for one bond. Distinct investors are
// counted by wallet address, case-insensitively. Utilization guards against
// a zero face value; days to maturity goes negative past maturity, which is
// not an error.
func (s *statsService) BondStats(bondID uint) (*BondStats, error) {
	bond, err := s.catalog.Get(bondID)
	if err != nil {
		return nil, err
	}

	maturity, err := parseISODate(bond.MaturityDate)
	if err != nil {
		return nil, err
	}

	investments, err := s.store.InvestmentsByBond(bondID)
	if err != nil {
		return nil, err
	}

	total := 0.0
	wallets := make(map[string]struct{})
	for i := range investments {
		total += investments[i].Amount
		wallets[strings.ToLower(investments[i].InvestorAddress)] = struct{}{}
	}

	utilization := 0.0
	if bond.FaceValue > 0 {
		utilization = total / bond.FaceValue * 100
	}

	return &BondStats{
		BondID:          bondID,
		Name:            bond.Name,
		TotalInvested:   total,
		InvestorCount:   len(wallets),
		InvestmentCount: len(investments),
		CouponRate:      float64(bond.CouponRate) / 100,
		FaceValue:       bond.FaceValue,
		Utilization:     utilization,
		DaysToMaturity:  wholeDays(s.now(), maturity),
	}, nil
}

// PlatformStats computes platform-wide figures over the full ledger.
// Rows whose bond is no longer listed count toward the platform totals —
// the ledger keeps its fidelity when bonds are removed — but are left out
// of the named per-bond breakdown.
func (s *statsService) PlatformStats() (*PlatformStats, error) {
	investments, err := s.store.AllInvestments()
	if err != nil {
		return nil, err
	}

	stats := &PlatformStats{
		TotalBonds: s.catalog.Len(),
		BondStats:  make(map[uint]BondBreakdown),
	}

	wallets := make(map[string]struct{})
	perBondWallets := make(map[uint]map[string]struct{})

	for i := range investments {
		inv := &investments[i]
		stats.TotalInvested += inv.Amount
		stats.TotalInvestments++
		wallets[strings.ToLower(inv.InvestorAddress)] = struct{}{}

		bond, err := s.catalog.Get(inv.BondID)
		if err != nil {
			// Orphaned reference: bond was removed after this row was
			// recorded. Platform totals above keep the row.
			continue
		}

		bd := stats.BondStats[inv.BondID]
		bd.Name = bond.Name
		bd.TotalInvested += inv.Amount
		bd.InvestmentCount++

		pw := perBondWallets[inv.BondID]
		if pw == nil {
			pw = make(map[string]struct{})
			perBondWallets[inv.BondID] = pw
		}
		pw[strings.ToLower(inv.InvestorAddress)] = struct{}{}
		bd.InvestorCount = len(pw)

		stats.BondStats[inv.BondID] = bd
	}

	stats.TotalInvestors = len(wallets)
	return stats, nil
}
