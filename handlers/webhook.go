package handlers

import (
	"errors"
	"io"
	"net/http"

	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentWebhookHandler receives gateway callbacks. The raw body is
// passed through untouched so signature verification sees exactly what
// the gateway signed.
func (hb *HandlerBundle) PaymentWebhookHandler(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read webhook body", err.Error())
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		signature = c.GetHeader("X-Webhook-Signature")
	}

	outcome, err := hb.Bookings.HandlePaymentWebhook(c.Request.Context(), signature, rawBody)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrBadWebhookSignature):
			utils.JSONError(c, http.StatusBadRequest, "invalid webhook signature", "")
		case errors.Is(err, mongo.ErrNoDocuments):
			utils.JSONError(c, http.StatusNotFound, "unknown payment reference", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to process webhook", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, outcome)
}
