package walletRepo

import (
	"context"

	"slotwise/models"
)

// WalletRepository persists wallets and their append-only ledger. The
// ledger engine itself is pure; this layer applies its results. Apply
// writes the balance and the entry together so the two cannot drift.
type WalletRepository interface {
	GetByProvider(ctx context.Context, providerID string) (*models.Wallet, error)
	Create(ctx context.Context, wallet *models.Wallet) error
	Apply(ctx context.Context, wallet models.Wallet, entry models.WalletLedgerEntry) error
	ListLedger(ctx context.Context, walletID string, limit int64) ([]models.WalletLedgerEntry, error)
}
