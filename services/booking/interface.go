package booking

import (
	"context"
	"time"

	"slotwise/models"
	"slotwise/services/payment"
	"slotwise/services/wallet"
)

// CreateBookingRequest is the public booking submission.
type CreateBookingRequest struct {
	ProviderID string           `json:"providerId" binding:"required"`
	ServiceID  string           `json:"serviceId" binding:"required"`
	StartAt    time.Time        `json:"startAt" binding:"required"`
	Customer   *models.Customer `json:"customer,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// TopupResult is returned by TopUpWallet.
type TopupResult struct {
	Wallet   models.Wallet            `json:"wallet"`
	Entry    models.WalletLedgerEntry `json:"ledgerEntry"`
	Payment  models.PaymentRecord     `json:"payment"`
	Checkout payment.Intent           `json:"checkout"`
}

// CancelResult pairs the cancelled booking with the refund decision.
type CancelResult struct {
	Booking        models.Booking       `json:"booking"`
	RefundEligible bool                 `json:"refundEligible"`
	IsLate         bool                 `json:"isLate"`
	Refund         *wallet.LedgerResult `json:"refund,omitempty"`
}

// WebhookOutcome reports what HandlePaymentWebhook applied.
type WebhookOutcome struct {
	Resolution payment.WebhookResolution `json:"resolution"`
	PaymentID  string                    `json:"paymentId"`
	BookingID  string                    `json:"bookingId,omitempty"`
}

// Service orchestrates availability, bookings, wallet and payments.
type Service interface {
	CheckAvailability(ctx context.Context, providerID, serviceID string, from time.Time) ([]models.AvailabilitySlot, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, providerID, bookingID string) (*ConfirmationOutcome, error)
	CancelBooking(ctx context.Context, providerID, bookingID string) (*CancelResult, error)
	RescheduleBooking(ctx context.Context, providerID, bookingID string, newStart time.Time) (*models.Booking, error)
	TopUpWallet(ctx context.Context, providerID string, credits int) (*TopupResult, error)
	HandlePaymentWebhook(ctx context.Context, signature string, rawBody []byte) (*WebhookOutcome, error)
	GetWallet(ctx context.Context, providerID string) (*models.Wallet, []models.WalletLedgerEntry, error)
}
