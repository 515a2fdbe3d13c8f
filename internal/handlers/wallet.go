package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Wallet handlers

type depositRequest struct {
	Amount float64 `json:"amount"`
}

// WalletBalance - GET /api/wallet
func (h *Handlers) WalletBalance(c *gin.Context) {
	balance, err := h.services.Wallet.Balance(c.Request.Context(), token(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet_balance": balance})
}

// WalletDeposit - POST /api/wallet/deposit
func (h *Handlers) WalletDeposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.services.Wallet.Deposit(c.Request.Context(), token(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet_balance": balance})
}

// WalletTransactions - GET /api/wallet/transactions
func (h *Handlers) WalletTransactions(c *gin.Context) {
	txns, err := h.services.Wallet.Transactions(c.Request.Context(), token(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": txns})
}
