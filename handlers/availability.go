package handlers

import (
	"errors"
	"net/http"
	"time"

	"slotwise/models"
	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetAvailabilityHandler returns the filtered bookable slots for one
// provider service. Public endpoint feeding the booking page.
func (hb *HandlerBundle) GetAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("id")
	serviceID := c.Param("serviceId")

	var from time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid from parameter", "expected RFC 3339 timestamp")
			return
		}
		from = parsed
	}

	slots, err := hb.Bookings.CheckAvailability(c.Request.Context(), providerID, serviceID, from)
	if err != nil {
		if errors.Is(err, booking.ErrInactiveService) {
			utils.JSONError(c, http.StatusNotFound, "service not found", err.Error())
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "service not found", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}
	if slots == nil {
		slots = []models.AvailabilitySlot{}
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListRulesHandler returns the authenticated provider's weekly rules.
func (hb *HandlerBundle) ListRulesHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	rules, err := hb.AvailabilityRepo.GetRulesByProvider(c.Request.Context(), providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch availability rules", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// CreateRuleHandler adds a weekly availability rule.
func (hb *HandlerBundle) CreateRuleHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	var rule models.AvailabilityRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "dow must be between 0 and 6")
		return
	}
	if rule.StartTime >= rule.EndTime {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "startTime must be before endTime")
		return
	}
	rule.ProviderID = providerID

	if err := hb.AvailabilityRepo.CreateRule(c.Request.Context(), &rule); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create rule", err.Error())
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// DeleteRuleHandler removes one of the provider's rules.
func (hb *HandlerBundle) DeleteRuleHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	ruleID := c.Param("ruleId")

	if err := hb.AvailabilityRepo.DeleteRule(c.Request.Context(), providerID, ruleID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "rule not found", ruleID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete rule", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateBlackoutHandler adds a full-day blackout.
func (hb *HandlerBundle) CreateBlackoutHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	var blackout models.BlackoutDate
	if err := c.ShouldBindJSON(&blackout); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if _, err := time.Parse("2006-01-02", blackout.Day); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "day must be formatted YYYY-MM-DD")
		return
	}
	blackout.ProviderID = providerID

	if err := hb.AvailabilityRepo.CreateBlackout(c.Request.Context(), &blackout); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create blackout", err.Error())
		return
	}
	c.JSON(http.StatusCreated, blackout)
}

// DeleteBlackoutHandler removes a blackout date.
func (hb *HandlerBundle) DeleteBlackoutHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	blackoutID := c.Param("blackoutId")

	if err := hb.AvailabilityRepo.DeleteBlackout(c.Request.Context(), providerID, blackoutID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "blackout not found", blackoutID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete blackout", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
