package payment

import "slotwise/models"

// WebhookResolution prescribes what the caller should persist for one
// gateway event. Pure lookup over event type, current payment status
// and current booking status; repeated events resolve to
// AlreadyProcessed so webhook retries stay idempotent.
type WebhookResolution struct {
	NextPaymentStatus               models.PaymentStatus `json:"nextPaymentStatus"`
	ShouldUpdatePayment             bool                 `json:"shouldUpdatePayment"`
	ShouldConfirmBooking            bool                 `json:"shouldConfirmBooking"`
	ShouldCreateReceiptNotification bool                 `json:"shouldCreateReceiptNotification"`
	AlreadyProcessed                bool                 `json:"alreadyProcessed"`
	Message                         string               `json:"message"`
}

// ResolveEvent decides how a payment event applies to the stored
// payment record and, for success events, whether the linked booking
// should transition to confirmed. A failure event never downgrades a
// payment that already succeeded.
func ResolveEvent(eventType models.PaymentEventType, paymentStatus models.PaymentStatus, booking *models.Booking) WebhookResolution {
	if eventType == models.EventPaymentSucceeded {
		if paymentStatus == models.PaymentSucceeded {
			return WebhookResolution{
				NextPaymentStatus: models.PaymentSucceeded,
				AlreadyProcessed:  true,
				Message:           "Payment already marked as succeeded.",
			}
		}

		canConfirmBooking := booking != nil && booking.Status != models.BookingConfirmed

		message := "Payment succeeded without a pending booking to confirm."
		if canConfirmBooking {
			message = "Payment succeeded. Booking will transition to confirmed."
		}
		return WebhookResolution{
			NextPaymentStatus:               models.PaymentSucceeded,
			ShouldUpdatePayment:             true,
			ShouldConfirmBooking:            canConfirmBooking,
			ShouldCreateReceiptNotification: canConfirmBooking,
			Message:                         message,
		}
	}

	// payment.failed
	switch paymentStatus {
	case models.PaymentFailed:
		return WebhookResolution{
			NextPaymentStatus: models.PaymentFailed,
			AlreadyProcessed:  true,
			Message:           "Payment already marked as failed.",
		}
	case models.PaymentSucceeded:
		return WebhookResolution{
			NextPaymentStatus: models.PaymentSucceeded,
			AlreadyProcessed:  true,
			Message:           "Ignoring failure event for a succeeded payment.",
		}
	default:
		return WebhookResolution{
			NextPaymentStatus:   models.PaymentFailed,
			ShouldUpdatePayment: true,
			Message:             "Payment marked as failed.",
		}
	}
}
