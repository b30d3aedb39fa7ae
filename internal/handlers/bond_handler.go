package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bondledger/internal/errors"
	"bondledger/internal/models"
	"bondledger/internal/services"
)

// BondHandler handles bond catalog and derived bond queries
type BondHandler struct {
	catalog      services.BondCatalog
	statsService services.StatsServicer
	yieldService services.YieldServicer
}

// NewBondHandler creates a new BondHandler
func NewBondHandler(catalog services.BondCatalog, statsService services.StatsServicer, yieldService services.YieldServicer) *BondHandler {
	return &BondHandler{
		catalog:      catalog,
		statsService: statsService,
		yieldService: yieldService,
	}
}

// CreateBondRequest represents the admin bond creation payload. Coupon rates
// are in basis points.
type CreateBondRequest struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name" binding:"required,max=255"`
	Issuer            string  `json:"issuer" binding:"max=255"`
	FaceValue         float64 `json:"face_value" binding:"omitempty,gt=0"`
	CouponRate        int64   `json:"coupon_rate" binding:"min=0"`
	IssueDate         string  `json:"issue_date" binding:"required,iso8601"`
	MaturityDate      string  `json:"maturity_date" binding:"required,iso8601"`
	Description       string  `json:"description"`
	MinimumInvestment float64 `json:"minimum_investment" binding:"omitempty,gt=0"`
	BondTokenAddress  string  `json:"bond_token_address" binding:"omitempty,wallet_address"`
}

// UpdateBondRequest represents the admin bond update payload. Only fields
// present in the request are applied.
type UpdateBondRequest struct {
	Name              *string  `json:"name" binding:"omitempty,max=255"`
	Issuer            *string  `json:"issuer" binding:"omitempty,max=255"`
	FaceValue         *float64 `json:"face_value" binding:"omitempty,gt=0"`
	CouponRate        *int64   `json:"coupon_rate" binding:"omitempty,min=0"`
	IssueDate         *string  `json:"issue_date" binding:"omitempty,iso8601"`
	MaturityDate      *string  `json:"maturity_date" binding:"omitempty,iso8601"`
	Description       *string  `json:"description"`
	MinimumInvestment *float64 `json:"minimum_investment" binding:"omitempty,gt=0"`
	BondTokenAddress  *string  `json:"bond_token_address" binding:"omitempty,wallet_address"`
}

// ListBonds returns every bond in the catalog
// @Summary     List bonds
// @Description List all bonds currently offered, in catalog order
// @Tags        bonds
// @Produce     json
// @Success     200 {array} models.Bond "Bonds"
// @Router      /bonds [get]
func (h *BondHandler) ListBonds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bonds": h.catalog.All()})
}

// GetBond returns a single bond by id
// @Summary     Get bond
// @Description Get a single bond by its id
// @Tags        bonds
// @Produce     json
// @Param       id path int true "Bond ID"
// @Success     200 {object} models.Bond "Bond"
// @Failure     404 {object} ErrorResponse "Bond not found"
// @Router      /bonds/{id} [get]
func (h *BondHandler) GetBond(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bond, err := h.catalog.Get(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bond)
}

// GetBondStats returns aggregate figures for one bond
// @Summary     Bond statistics
// @Description Aggregate investment figures for one bond, recomputed from the ledger
// @Tags        bonds
// @Produce     json
// @Param       id path int true "Bond ID"
// @Success     200 {object} services.BondStats "Bond statistics"
// @Failure     404 {object} ErrorResponse "Bond not found"
// @Failure     400 {object} ErrorResponse "Malformed bond date"
// @Router      /bonds/{id}/stats [get]
func (h *BondHandler) GetBondStats(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.statsService.BondStats(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetYield returns the yield calculation for one bond
// @Summary     Bond yield
// @Description Yield figures for one bond on a fixed 1000-unit notional, optionally echoed per investor
// @Tags        bonds
// @Produce     json
// @Param       id path int true "Bond ID"
// @Param       address query string false "Investor wallet address"
// @Success     200 {object} services.YieldCalculation "Yield calculation"
// @Failure     404 {object} ErrorResponse "Bond not found"
// @Failure     400 {object} ErrorResponse "Malformed bond date"
// @Router      /yield/{id} [get]
func (h *BondHandler) GetYield(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bond, err := h.catalog.Get(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	calc, err := h.yieldService.Calculate(bond, c.Query("address"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, calc)
}

// CreateBond adds or replaces a bond in the catalog
// @Summary     Create bond
// @Description Add a bond to the catalog; an existing id is overwritten in place
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBondRequest true "Bond terms"
// @Success     201 {object} models.Bond "Created bond"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /bonds [post]
func (h *BondHandler) CreateBond(c *gin.Context) {
	var req CreateBondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bond := models.Bond{
		ID:                req.ID,
		Name:              req.Name,
		Issuer:            req.Issuer,
		FaceValue:         req.FaceValue,
		CouponRate:        req.CouponRate,
		IssueDate:         req.IssueDate,
		MaturityDate:      req.MaturityDate,
		Description:       req.Description,
		MinimumInvestment: req.MinimumInvestment,
		BondTokenAddress:  req.BondTokenAddress,
	}
	h.catalog.Add(bond)

	c.JSON(http.StatusCreated, bond)
}

// UpdateBond applies a partial update to a bond
// @Summary     Update bond
// @Description Apply the provided fields to an existing bond
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bond ID"
// @Param       request body UpdateBondRequest true "Fields to update"
// @Success     200 {object} models.Bond "Updated bond"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Bond not found"
// @Router      /bonds/{id} [put]
func (h *BondHandler) UpdateBond(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bond, err := h.catalog.Update(id, models.BondPatch{
		Name:              req.Name,
		Issuer:            req.Issuer,
		FaceValue:         req.FaceValue,
		CouponRate:        req.CouponRate,
		IssueDate:         req.IssueDate,
		MaturityDate:      req.MaturityDate,
		Description:       req.Description,
		MinimumInvestment: req.MinimumInvestment,
		BondTokenAddress:  req.BondTokenAddress,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bond)
}

// DeleteBond removes a bond from the catalog
// @Summary     Delete bond
// @Description Remove a bond from the catalog; its ledger rows remain
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bond ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Bond not found"
// @Router      /bonds/{id} [delete]
func (h *BondHandler) DeleteBond(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.catalog.Remove(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
