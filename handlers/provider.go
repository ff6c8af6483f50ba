package handlers

import (
	"net/http"

	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// GetProviderByHandleHandler returns the public booking-page profile.
func (hb *HandlerBundle) GetProviderByHandleHandler(c *gin.Context) {
	handle := c.Param("handle")

	provider, err := hb.ProviderRepo.GetByHandle(c.Request.Context(), handle)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "provider not found", handle)
		return
	}

	services, err := hb.ProviderRepo.ListServicesByProvider(c.Request.Context(), provider.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch services", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"provider": provider, "services": services})
}

// HealthHandler reports the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
}
