package booking

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"
	"slotwise/services/payment"
	"slotwise/services/wallet"
)

// ConfirmationOutcome is the result of one confirmation attempt. Either
// Confirmed is true and Ledger carries the credit deduction to persist,
// or Checkout carries the gateway intent the provider must complete.
type ConfirmationOutcome struct {
	Confirmed bool                 `json:"confirmed"`
	Message   string               `json:"message"`
	Booking   models.Booking       `json:"booking"`
	Ledger    *wallet.LedgerResult `json:"ledger,omitempty"`
	Checkout  *payment.Intent      `json:"checkout,omitempty"`
}

// ConfirmWithWallet decides how a pending booking gets confirmed. With a
// credit available the booking confirms immediately and one credit is
// consumed; otherwise the gateway is asked for a per-booking checkout
// and the booking stays pending with the wallet untouched. The wallet
// check happens before any gateway call so a funded wallet never incurs
// a charge attempt.
func ConfirmWithWallet(ctx context.Context, gw payment.Gateway, w models.Wallet, booking models.Booking, amountCents int64, now time.Time) (ConfirmationOutcome, error) {
	if w.BalanceCredits >= 1 {
		res, err := wallet.ConsumeCreditForBooking(w, booking, now)
		if err != nil {
			return ConfirmationOutcome{}, err
		}
		booking.Status = models.BookingConfirmed
		booking.PayMode = models.PayModeCredit
		return ConfirmationOutcome{
			Confirmed: true,
			Message:   "Booking confirmed and credit deducted.",
			Booking:   booking,
			Ledger:    &res,
		}, nil
	}

	intent, err := gw.CreatePerBookingIntent(ctx, booking.ID, amountCents)
	if err != nil {
		return ConfirmationOutcome{}, fmt.Errorf("error creating checkout for booking %s: %w", booking.ID, err)
	}
	booking.PayMode = models.PayModePerBooking
	return ConfirmationOutcome{
		Confirmed: false,
		Message:   "No credits remaining. Provider must complete checkout to confirm booking.",
		Booking:   booking,
		Checkout:  &intent,
	}, nil
}
