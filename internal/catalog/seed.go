package catalog

import (
	"time"

	"bondledger/internal/models"
)

// Seed loads the built-in government bond listings into the catalog.
// Issue dates are anchored at startup so yield figures accrue from attach
// time, matching the issuer feed format (ISO-8601 strings).
func Seed(c *Catalog) {
	now := time.Now()

	c.Add(models.Bond{
		ID:                0,
		Name:              "US Treasury 10-Year Bond",
		Issuer:            "United States Treasury",
		FaceValue:         1_000_000,
		CouponRate:        450,
		IssueDate:         now.Format(time.RFC3339),
		MaturityDate:      now.AddDate(0, 0, 3650).Format(time.RFC3339),
		Description:       "10-year US Treasury bond with semi-annual interest payments",
		MinimumInvestment: 10,
		BondTokenAddress:  "0x0000000000000000000000000000000000000000",
	})
	c.Add(models.Bond{
		ID:                1,
		Name:              "UK Gilt 5-Year Bond",
		Issuer:            "UK Debt Management Office",
		FaceValue:         500_000,
		CouponRate:        400,
		IssueDate:         now.Format(time.RFC3339),
		MaturityDate:      now.AddDate(0, 0, 1825).Format(time.RFC3339),
		Description:       "5-year UK government bond with quarterly interest payments",
		MinimumInvestment: 20,
		BondTokenAddress:  "0x0000000000000000000000000000000000000001",
	})
	c.Add(models.Bond{
		ID:                2,
		Name:              "German Bund 3-Year Bond",
		Issuer:            "German Finance Agency",
		FaceValue:         750_000,
		CouponRate:        350,
		IssueDate:         now.Format(time.RFC3339),
		MaturityDate:      now.AddDate(0, 0, 1095).Format(time.RFC3339),
		Description:       "3-year German government bond with annual interest payments",
		MinimumInvestment: 15,
		BondTokenAddress:  "0x0000000000000000000000000000000000000002",
	})
}
