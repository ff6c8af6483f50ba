package handlers

import (
	"net/http"
	"time"

	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler returns the provider's summary counts and upcoming
// bookings.
func (hb *HandlerBundle) DashboardHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	now := time.Now().UTC()

	summary, err := hb.Reports.DashboardSummary(c.Request.Context(), providerID, now)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build dashboard summary", err.Error())
		return
	}

	upcoming, err := hb.Reports.UpcomingBookings(c.Request.Context(), providerID, now)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list upcoming bookings", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "upcoming": upcoming})
}
