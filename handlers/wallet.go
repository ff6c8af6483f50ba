package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"slotwise/models"
	"slotwise/services/wallet"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetWalletHandler returns the provider's wallet and recent ledger.
func (hb *HandlerBundle) GetWalletHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	w, entries, err := hb.Bookings.GetWallet(c.Request.Context(), providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch wallet", err.Error())
		return
	}
	if w == nil {
		// No wallet until the first top-up.
		c.JSON(http.StatusOK, gin.H{"wallet": nil, "ledger": []models.WalletLedgerEntry{}})
		return
	}
	if entries == nil {
		entries = []models.WalletLedgerEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"wallet": w, "ledger": entries})
}

// TopUpWalletHandler buys confirmation credits. The per-request cap is
// enforced here so the ledger engine stays unconstrained.
func (hb *HandlerBundle) TopUpWalletHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	var input struct {
		Credits int `json:"credits" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Credits < 1 || input.Credits > hb.MaxTopupCredits {
		utils.JSONError(c, http.StatusBadRequest, "invalid top-up amount",
			fmt.Sprintf("credits must be between 1 and %d", hb.MaxTopupCredits))
		return
	}

	result, err := hb.Bookings.TopUpWallet(c.Request.Context(), providerID, input.Credits)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInvalidTopupAmount):
			utils.JSONError(c, http.StatusBadRequest, "invalid top-up amount", err.Error())
		case errors.Is(err, mongo.ErrNoDocuments):
			utils.JSONError(c, http.StatusNotFound, "provider not found", providerID)
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to top up wallet", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
