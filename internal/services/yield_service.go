package services

import (
	"time"

	"bondledger/internal/models"
)

// yieldNotional is the fixed notional the interest figures are quoted on.
// The figures describe the bond, not the caller's position.
const yieldNotional = 1000.0

// yieldService computes coupon-based yield figures. The result is a pure
// function of (bond, now); the clock is injectable so tests can pin now.
type yieldService struct {
	now func() time.Time
}

// NewYieldService creates a new YieldServicer.
func NewYieldService() YieldServicer {
	return &yieldService{now: time.Now}
}

// Calculate derives the yield record for a bond. Both bond dates must parse
// as ISO-8601 or the call fails with INVALID_DATE. Bonds are modeled at
// par, so the current yield equals the coupon rate; accrued interest uses
// simple linear daily accrual over a 365-day year.
//
// When an investor address is supplied the investor fields are populated
// with the same values as the bond-level figures: positions are not scaled
// per investor. Tests pin this flat behavior.
func (s *yieldService) Calculate(bond models.Bond, investorAddress string) (*YieldCalculation, error) {
	maturity, err := parseISODate(bond.MaturityDate)
	if err != nil {
		return nil, err
	}
	issue, err := parseISODate(bond.IssueDate)
	if err != nil {
		return nil, err
	}

	now := s.now()

	couponRatePct := float64(bond.CouponRate) / 100
	annualInterest := yieldNotional * float64(bond.CouponRate) / 10000
	daysSinceIssue := wholeDays(issue, now)
	accruedInterest := annualInterest * float64(daysSinceIssue) / 365

	calc := &YieldCalculation{
		BondID:          bond.ID,
		CouponRate:      couponRatePct,
		CurrentYield:    couponRatePct,
		AnnualInterest:  annualInterest,
		AccruedInterest: accruedInterest,
		DaysToMaturity:  wholeDays(now, maturity),
	}

	if investorAddress != "" {
		investorYield := couponRatePct
		investorAccrued := accruedInterest
		calc.InvestorYield = &investorYield
		calc.InvestorAccruedInterest = &investorAccrued
	}

	return calc, nil
}
