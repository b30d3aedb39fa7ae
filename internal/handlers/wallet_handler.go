package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bondledger/internal/chain"
	apperrors "bondledger/internal/errors"
	"bondledger/internal/validator"
)

// WalletHandler handles settlement-chain wallet queries
type WalletHandler struct {
	chainClient *chain.Client
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(chainClient *chain.Client) *WalletHandler {
	return &WalletHandler{chainClient: chainClient}
}

// GetBalance returns the native-token balance of a wallet
// @Summary     Wallet balance
// @Description Native-token balance of a wallet on the settlement chain, best-effort
// @Tags        wallet
// @Produce     json
// @Param       address path string true "Wallet address"
// @Success     200 {object} map[string]string "Balance in the chain's smallest unit"
// @Failure     400 {object} ErrorResponse "Malformed address"
// @Failure     503 {object} ErrorResponse "Chain node unreachable"
// @Router      /wallet/{address}/balance [get]
func (h *WalletHandler) GetBalance(c *gin.Context) {
	address := c.Param("address")
	if !validator.IsWalletAddress(address) {
		respondWithError(c, apperrors.ErrInvalidInvestorAddress)
		return
	}

	balance, err := h.chainClient.GetBalance(c.Request.Context(), address)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrChainUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address,
		"balance": balance.String(),
	})
}
