package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bondledger/internal/errors"
	"bondledger/internal/pagination"
	"bondledger/internal/services"
)

// InvestmentHandler handles ledger writes and derived portfolio queries
type InvestmentHandler struct {
	ledgerService services.LedgerServicer
	statsService  services.StatsServicer
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(ledgerService services.LedgerServicer, statsService services.StatsServicer) *InvestmentHandler {
	return &InvestmentHandler{
		ledgerService: ledgerService,
		statsService:  statsService,
	}
}

// InvestRequest represents the investment request payload. Timestamp is
// optional and defaults to the commit time.
type InvestRequest struct {
	BondID          *uint   `json:"bond_id" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
	InvestorAddress string  `json:"investor_address" binding:"required,wallet_address"`
	Timestamp       string  `json:"timestamp" binding:"omitempty,iso8601"`
	TransactionHash string  `json:"transaction_hash"`
}

// Invest records one investment against a bond
// @Summary     Record investment
// @Description Validate an investment against the bond's terms and append it to the ledger
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InvestRequest true "Investment"
// @Success     201 {object} models.Investment "Recorded investment"
// @Failure     400 {object} ErrorResponse "Invalid input or amount below minimum"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bond not found"
// @Router      /invest [post]
func (h *InvestmentHandler) Invest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var timestamp time.Time
	if req.Timestamp != "" {
		timestamp, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid timestamp"))
			return
		}
	}

	investment, err := h.ledgerService.RecordInvestment(userID, *req.BondID, req.InvestorAddress, req.Amount, timestamp, req.TransactionHash)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, investment)
}

// GetWalletPortfolio returns the public portfolio for a wallet address
// @Summary     Wallet portfolio
// @Description Derived portfolio for a wallet address, matched case-insensitively; unknown addresses yield an empty portfolio
// @Tags        investments
// @Produce     json
// @Param       address path string true "Wallet address"
// @Success     200 {object} services.Portfolio "Portfolio"
// @Failure     400 {object} ErrorResponse "Malformed address"
// @Router      /portfolio/{address} [get]
func (h *InvestmentHandler) GetWalletPortfolio(c *gin.Context) {
	address := c.Param("address")

	portfolio, err := h.ledgerService.PortfolioForWallet(address)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// GetUserInvestments returns the authenticated user's own portfolio
// @Summary     User investments
// @Description Derived portfolio for a user; callers may only read their own
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} services.Portfolio "Portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the portfolio owner"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /investments/user/{id} [get]
func (h *InvestmentHandler) GetUserInvestments(c *gin.Context) {
	requesterID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.ledgerService.PortfolioForUser(requesterID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// GetBondInvestments returns the ledger rows recorded against a bond
// @Summary     Bond investments
// @Description All investments recorded against a bond, most-recent-first; the bond may have been removed from the catalog
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bond ID"
// @Success     200 {object} map[string]any "Investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments/bond/{id} [get]
func (h *InvestmentHandler) GetBondInvestments(c *gin.Context) {
	bondID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investments, err := h.ledgerService.InvestmentsForBond(bondID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bond_id":     bondID,
		"investments": investments,
		"count":       len(investments),
	})
}

// GetPlatformStats returns platform-wide aggregate figures
// @Summary     Platform statistics
// @Description Aggregate figures across the whole ledger, recomputed per call
// @Tags        investments
// @Produce     json
// @Success     200 {object} services.PlatformStats "Platform statistics"
// @Failure     503 {object} ErrorResponse "Ledger storage unavailable"
// @Router      /investments/stats [get]
func (h *InvestmentHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.statsService.PlatformStats()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListInvestments returns one page of the full ledger
// @Summary     List investments
// @Description Paginated view of the full ledger, most-recent-first
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Investments page"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /investments [get]
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	var req pagination.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	page, err := h.ledgerService.InvestmentsPage(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
