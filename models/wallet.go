package models

import "time"

// Wallet holds a provider's prepaid booking-confirmation credits.
// Created with a zero balance on first top-up and mutated only through
// ledger operations.
type Wallet struct {
	ID             string `bson:"id" json:"id"`
	ProviderID     string `bson:"provider_id" json:"providerId"`
	BalanceCredits int    `bson:"balance_credits" json:"balanceCredits"`
	Currency       string `bson:"currency" json:"currency"`
}

// WalletLedgerEntry is an immutable record of one balance-changing
// event. Entries are append-only; the wallet balance must always equal
// the sum of its entries' deltas.
type WalletLedgerEntry struct {
	ID            string    `bson:"id" json:"id"`
	WalletID      string    `bson:"wallet_id" json:"walletId"`
	BookingID     string    `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	ChangeCredits int       `bson:"change_credits" json:"changeCredits"`
	Description   string    `bson:"description" json:"description"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}
