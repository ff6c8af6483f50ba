package wallet

import (
	"fmt"
	"time"

	"slotwise/models"

	"github.com/google/uuid"
)

// LedgerResult pairs the wallet snapshot after one operation with the
// ledger entry describing it. The caller is responsible for persisting
// both atomically; the balance must always equal the sum of all entry
// deltas.
type LedgerResult struct {
	Wallet models.Wallet            `json:"wallet"`
	Entry  models.WalletLedgerEntry `json:"ledgerEntry"`
}

// AddCredits applies a credit top-up to the wallet.
func AddCredits(w models.Wallet, creditsToAdd int, now time.Time) (LedgerResult, error) {
	if creditsToAdd <= 0 {
		return LedgerResult{}, ErrInvalidTopupAmount
	}

	w.BalanceCredits += creditsToAdd
	return LedgerResult{
		Wallet: w,
		Entry: models.WalletLedgerEntry{
			ID:            uuid.New().String(),
			WalletID:      w.ID,
			ChangeCredits: creditsToAdd,
			Description:   fmt.Sprintf("Top up %d credit%s", creditsToAdd, plural(creditsToAdd)),
			CreatedAt:     stamp(now),
		},
	}, nil
}

// ConsumeCreditForBooking deducts one credit to confirm the booking.
func ConsumeCreditForBooking(w models.Wallet, booking models.Booking, now time.Time) (LedgerResult, error) {
	if w.BalanceCredits < 1 {
		return LedgerResult{}, ErrInsufficientCredits
	}

	w.BalanceCredits--
	return LedgerResult{
		Wallet: w,
		Entry: models.WalletLedgerEntry{
			ID:            uuid.New().String(),
			WalletID:      w.ID,
			BookingID:     booking.ID,
			ChangeCredits: -1,
			Description:   "Credit consumed for booking confirmation",
			CreatedAt:     stamp(now),
		},
	}, nil
}

// RefundCreditForCancellation returns one credit after a refund-eligible
// cancellation. There is no upper bound on the balance; the caller only
// issues refunds for confirmed credit-paid bookings, which keeps refunds
// paired with prior consumptions.
func RefundCreditForCancellation(w models.Wallet, booking models.Booking, now time.Time) LedgerResult {
	w.BalanceCredits++
	return LedgerResult{
		Wallet: w,
		Entry: models.WalletLedgerEntry{
			ID:            uuid.New().String(),
			WalletID:      w.ID,
			BookingID:     booking.ID,
			ChangeCredits: 1,
			Description:   "Credit refunded after cancellation",
			CreatedAt:     stamp(now),
		},
	}
}

func stamp(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now().UTC()
	}
	return now
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
