package models

// Bond describes the terms of a listed bond. Bonds live in the in-memory
// catalog, not the database; the catalog owns them exclusively and they are
// immutable outside administrative create/update/delete.
//
// CouponRate is stored in basis points (hundredths of a percent): 450 means
// 4.50% annually. Dates are ISO-8601 strings as supplied by the issuer feed.
type Bond struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Issuer            string  `json:"issuer"`
	FaceValue         float64 `json:"face_value"`
	CouponRate        int64   `json:"coupon_rate"`
	IssueDate         string  `json:"issue_date"`
	MaturityDate      string  `json:"maturity_date"`
	Description       string  `json:"description"`
	MinimumInvestment float64 `json:"minimum_investment"`
	BondTokenAddress  string  `json:"bond_token_address"`
}

// BondPatch is a partial update for a bond. Only non-nil fields are applied;
// the bond id itself is never patchable.
type BondPatch struct {
	Name              *string  `json:"name,omitempty"`
	Issuer            *string  `json:"issuer,omitempty"`
	FaceValue         *float64 `json:"face_value,omitempty"`
	CouponRate        *int64   `json:"coupon_rate,omitempty"`
	IssueDate         *string  `json:"issue_date,omitempty"`
	MaturityDate      *string  `json:"maturity_date,omitempty"`
	Description       *string  `json:"description,omitempty"`
	MinimumInvestment *float64 `json:"minimum_investment,omitempty"`
	BondTokenAddress  *string  `json:"bond_token_address,omitempty"`
}
