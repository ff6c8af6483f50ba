package wallet

import (
	"errors"
	"testing"
	"time"

	"slotwise/models"
)

var baseWallet = models.Wallet{
	ID: "wallet-1", ProviderID: "provider-1", BalanceCredits: 2, Currency: "JMD",
}

var baseBooking = models.Booking{
	ID: "booking-1", ProviderID: "provider-1", ServiceID: "service-1",
	Status: models.BookingPending,
}

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAddCredits(t *testing.T) {
	w := baseWallet
	w.BalanceCredits = 1

	result, err := AddCredits(w, 3, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Wallet.BalanceCredits != 4 {
		t.Fatalf("balance = %d, want 4", result.Wallet.BalanceCredits)
	}
	if result.Entry.ChangeCredits != 3 {
		t.Fatalf("changeCredits = %d, want 3", result.Entry.ChangeCredits)
	}
	if result.Entry.Description != "Top up 3 credits" {
		t.Fatalf("description = %q", result.Entry.Description)
	}
	if result.Entry.WalletID != w.ID {
		t.Fatalf("walletId = %q", result.Entry.WalletID)
	}
	if !result.Entry.CreatedAt.Equal(testNow) {
		t.Fatalf("createdAt = %s, want %s", result.Entry.CreatedAt, testNow)
	}
}

func TestAddCredits_SingularDescription(t *testing.T) {
	result, err := AddCredits(baseWallet, 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Entry.Description != "Top up 1 credit" {
		t.Fatalf("description = %q", result.Entry.Description)
	}
}

func TestAddCredits_RejectsInvalidAmounts(t *testing.T) {
	for _, credits := range []int{0, -2} {
		if _, err := AddCredits(baseWallet, credits, testNow); !errors.Is(err, ErrInvalidTopupAmount) {
			t.Fatalf("credits=%d: expected ErrInvalidTopupAmount, got %v", credits, err)
		}
	}
}

func TestConsumeCreditForBooking(t *testing.T) {
	result, err := ConsumeCreditForBooking(baseWallet, baseBooking, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Wallet.BalanceCredits != 1 {
		t.Fatalf("balance = %d, want 1", result.Wallet.BalanceCredits)
	}
	if result.Entry.ChangeCredits != -1 {
		t.Fatalf("changeCredits = %d, want -1", result.Entry.ChangeCredits)
	}
	if result.Entry.BookingID != baseBooking.ID {
		t.Fatalf("bookingId = %q", result.Entry.BookingID)
	}
	if result.Entry.Description != "Credit consumed for booking confirmation" {
		t.Fatalf("description = %q", result.Entry.Description)
	}
}

func TestConsumeCreditForBooking_Insufficient(t *testing.T) {
	w := baseWallet
	w.BalanceCredits = 0

	if _, err := ConsumeCreditForBooking(w, baseBooking, testNow); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
}

func TestRefundCreditForCancellation(t *testing.T) {
	w := baseWallet
	w.BalanceCredits = 0

	result := RefundCreditForCancellation(w, baseBooking, testNow)
	if result.Wallet.BalanceCredits != 1 {
		t.Fatalf("balance = %d, want 1", result.Wallet.BalanceCredits)
	}
	if result.Entry.ChangeCredits != 1 {
		t.Fatalf("changeCredits = %d, want 1", result.Entry.ChangeCredits)
	}
	if result.Entry.Description != "Credit refunded after cancellation" {
		t.Fatalf("description = %q", result.Entry.Description)
	}
	if result.Entry.BookingID != baseBooking.ID {
		t.Fatalf("bookingId = %q", result.Entry.BookingID)
	}
}

func TestLedger_BalanceConservation(t *testing.T) {
	w := baseWallet
	w.BalanceCredits = 5
	start := w.BalanceCredits
	sum := 0

	apply := func(result LedgerResult, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		w = result.Wallet
		sum += result.Entry.ChangeCredits
	}

	apply(AddCredits(w, 4, testNow))
	apply(ConsumeCreditForBooking(w, baseBooking, testNow))
	apply(ConsumeCreditForBooking(w, baseBooking, testNow))
	result := RefundCreditForCancellation(w, baseBooking, testNow)
	w = result.Wallet
	sum += result.Entry.ChangeCredits
	apply(AddCredits(w, 2, testNow))

	if w.BalanceCredits != start+sum {
		t.Fatalf("balance %d != start %d + sum of deltas %d", w.BalanceCredits, start, sum)
	}
}

func TestLedger_FreshEntryIDs(t *testing.T) {
	first, err := AddCredits(baseWallet, 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := AddCredits(baseWallet, 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Entry.ID == "" || first.Entry.ID == second.Entry.ID {
		t.Fatalf("ledger entries must get fresh unique ids: %q vs %q", first.Entry.ID, second.Entry.ID)
	}
}
