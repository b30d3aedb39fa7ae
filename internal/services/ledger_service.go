package services

import (
	"fmt"
	"time"

	apperrors "bondledger/internal/errors"
	"bondledger/internal/models"
	"bondledger/internal/pagination"
)

// ledgerService validates investment requests against the bond catalog and
// appends them to the store. The store assigns a fresh id per call, so a
// retried RecordInvestment creates a second row; callers must not retry.
type ledgerService struct {
	store   LedgerStore
	catalog BondCatalog
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(store LedgerStore, catalog BondCatalog) LedgerServicer {
	return &ledgerService{store: store, catalog: catalog}
}

// RecordInvestment validates and persists one investment. The bond must
// exist in the catalog and the amount must meet its minimum at insert time;
// nothing is persisted when validation fails.
func (s *ledgerService) RecordInvestment(userID, bondID uint, investorAddress string, amount float64, timestamp time.Time, transactionHash string) (*models.Investment, error) {
	bond, err := s.catalog.Get(bondID)
	if err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, apperrors.ErrInvalidInvestmentAmount
	}
	if amount < bond.MinimumInvestment {
		return nil, apperrors.WithMessage(apperrors.ErrBelowMinimumInvestment,
			fmt.Sprintf("Investment amount must be at least %g", bond.MinimumInvestment))
	}

	return s.store.RecordInvestment(userID, bondID, investorAddress, amount, timestamp, transactionHash)
}

// PortfolioForUser returns the derived portfolio for a user. A caller may
// only read their own portfolio; the identity comes from the authentication
// collaborator and is trusted as-is.
func (s *ledgerService) PortfolioForUser(requesterID, userID uint) (*Portfolio, error) {
	if requesterID != userID {
		return nil, apperrors.ErrForbidden
	}
	if _, err := s.store.GetUserByID(userID); err != nil {
		return nil, err
	}

	investments, err := s.store.InvestmentsByUser(userID)
	if err != nil {
		return nil, err
	}

	p := buildPortfolio(investments)
	p.UserID = userID
	return p, nil
}

// PortfolioForWallet returns the derived portfolio for a wallet address.
// Wallet portfolios are public: the address is matched case-insensitively
// and an address with no investments yields an empty portfolio.
func (s *ledgerService) PortfolioForWallet(address string) (*Portfolio, error) {
	investments, err := s.store.InvestmentsByWallet(address)
	if err != nil {
		return nil, err
	}

	p := buildPortfolio(investments)
	p.Address = address
	return p, nil
}

// InvestmentsForBond returns the ledger rows recorded against a bond. The
// bond itself may have been removed from the catalog; the rows remain.
func (s *ledgerService) InvestmentsForBond(bondID uint) ([]models.Investment, error) {
	return s.store.InvestmentsByBond(bondID)
}

// AllInvestments returns the full ledger, most-recent-first.
func (s *ledgerService) AllInvestments() ([]models.Investment, error) {
	return s.store.AllInvestments()
}

// InvestmentsPage returns one page of the ledger, most-recent-first.
func (s *ledgerService) InvestmentsPage(req pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	req.Defaults()
	investments, total, err := s.store.InvestmentsPage(req)
	if err != nil {
		return nil, err
	}
	resp := pagination.NewPageResponse(investments, req.Page, req.PageSize, total)
	return &resp, nil
}

// buildPortfolio sums a consistent snapshot of investments into the derived
// view. TotalValue mirrors TotalInvested until market pricing exists.
func buildPortfolio(investments []models.Investment) *Portfolio {
	total := 0.0
	for i := range investments {
		total += investments[i].Amount
	}
	return &Portfolio{
		Investments:   investments,
		Count:         len(investments),
		TotalInvested: total,
		TotalValue:    total,
		TotalYield:    0,
	}
}
