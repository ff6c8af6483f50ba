package handlers

import (
	"errors"
	"net/http"
	"time"

	"slotwise/models"
	"slotwise/services/booking"
	"slotwise/services/policy"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateBookingHandler accepts a public booking submission and persists
// a pending booking when the requested slot is still free.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bk, err := hb.Bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSlotUnavailable):
			utils.JSONError(c, http.StatusConflict, "slot unavailable", "the requested time is no longer bookable")
		case errors.Is(err, booking.ErrInactiveService):
			utils.JSONError(c, http.StatusNotFound, "service not found", err.Error())
		case errors.Is(err, mongo.ErrNoDocuments):
			utils.JSONError(c, http.StatusNotFound, "service not found", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, bk)
}

// ConfirmBookingHandler runs the wallet confirmation decision for the
// authenticated provider.
func (hb *HandlerBundle) ConfirmBookingHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	bookingID := c.Param("bookingId")

	outcome, err := hb.Bookings.ConfirmBooking(c.Request.Context(), providerID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrUnsupportedStatus):
			utils.JSONError(c, http.StatusConflict, "booking cannot be confirmed", "only pending bookings can be confirmed")
		case errors.Is(err, mongo.ErrNoDocuments):
			utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to confirm booking", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// CancelBookingHandler cancels a booking, applying the late-cancel
// policy and any credit refund.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	bookingID := c.Param("bookingId")

	result, err := hb.Bookings.CancelBooking(c.Request.Context(), providerID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrUnsupportedStatus):
			utils.JSONError(c, http.StatusConflict, "booking cannot be cancelled", "only pending or confirmed bookings can be cancelled")
		case errors.Is(err, policy.ErrInvalidStartAt):
			utils.JSONError(c, http.StatusUnprocessableEntity, "booking has an invalid start time", bookingID)
		case errors.Is(err, mongo.ErrNoDocuments):
			utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// AppendBookingNoteHandler adds a free-text note to the provider's
// booking.
func (hb *HandlerBundle) AppendBookingNoteHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	bookingID := c.Param("bookingId")

	var input struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bk, err := hb.BookingRepo.GetByID(c.Request.Context(), bookingID)
	if err != nil || bk.ProviderID != providerID {
		utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
		return
	}

	if err := hb.BookingRepo.AppendNote(c.Request.Context(), bookingID, input.Note); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to append note", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBookingNotificationsHandler returns the queued notification
// records for one of the provider's bookings.
func (hb *HandlerBundle) ListBookingNotificationsHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	bookingID := c.Param("bookingId")

	bk, err := hb.BookingRepo.GetByID(c.Request.Context(), bookingID)
	if err != nil || bk.ProviderID != providerID {
		utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
		return
	}

	notifications, err := hb.NotificationRepo.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch notifications", err.Error())
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// RescheduleBookingHandler moves a booking to a new available slot.
func (hb *HandlerBundle) RescheduleBookingHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	bookingID := c.Param("bookingId")

	var input struct {
		StartAt time.Time `json:"startAt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bk, err := hb.Bookings.RescheduleBooking(c.Request.Context(), providerID, bookingID, input.StartAt)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSlotUnavailable):
			utils.JSONError(c, http.StatusConflict, "slot unavailable", "the requested time is not bookable")
		case errors.Is(err, booking.ErrUnsupportedStatus):
			utils.JSONError(c, http.StatusConflict, "booking cannot be rescheduled", "only pending or confirmed bookings can be moved")
		case errors.Is(err, mongo.ErrNoDocuments):
			utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to reschedule booking", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, bk)
}
