package walletRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/database"
	"slotwise/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWalletRepo implements WalletRepository using MongoDB.
type MongoWalletRepo struct {
	walletColl *mongo.Collection
	ledgerColl *mongo.Collection
}

func NewMongoWalletRepo() WalletRepository {
	db := database.MongoClient.Database("slotwise")
	return &MongoWalletRepo{
		walletColl: db.Collection("wallets"),
		ledgerColl: db.Collection("wallet_ledger"),
	}
}

func (repo *MongoWalletRepo) GetByProvider(ctx context.Context, providerID string) (*models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var wallet models.Wallet
	err := repo.walletColl.FindOne(ctx, bson.M{"provider_id": providerID}).Decode(&wallet)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching wallet for provider %s: %w", providerID, err)
	}
	return &wallet, nil
}

func (repo *MongoWalletRepo) Create(ctx context.Context, wallet *models.Wallet) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	if _, err := repo.walletColl.InsertOne(ctx, wallet); err != nil {
		return fmt.Errorf("error creating wallet: %w", err)
	}
	return nil
}

// Apply persists one ledger operation: the new balance and the entry in
// a single transaction when the deployment supports it, falling back to
// write-entry-then-balance with a compensating delete.
func (repo *MongoWalletRepo) Apply(ctx context.Context, wallet models.Wallet, entry models.WalletLedgerEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := repo.walletColl.Database().Client()
	sess, err := client.StartSession()
	if err == nil {
		defer sess.EndSession(ctx)
		_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			if _, err := repo.ledgerColl.InsertOne(sc, entry); err != nil {
				return nil, err
			}
			res, err := repo.walletColl.UpdateOne(sc, bson.M{"id": wallet.ID},
				bson.M{"$set": bson.M{"balance_credits": wallet.BalanceCredits}})
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, mongo.ErrNoDocuments
			}
			return nil, nil
		})
		if err != nil {
			return fmt.Errorf("error applying ledger entry %s: %w", entry.ID, err)
		}
		return nil
	}

	// Standalone mongod: no sessions. Insert the entry first, then the
	// balance, and remove the entry again if the balance write fails.
	if _, err := repo.ledgerColl.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("error writing ledger entry %s: %w", entry.ID, err)
	}
	res, err := repo.walletColl.UpdateOne(ctx, bson.M{"id": wallet.ID},
		bson.M{"$set": bson.M{"balance_credits": wallet.BalanceCredits}})
	if err != nil || res.MatchedCount == 0 {
		_, _ = repo.ledgerColl.DeleteOne(ctx, bson.M{"id": entry.ID})
		if err == nil {
			err = mongo.ErrNoDocuments
		}
		return fmt.Errorf("error updating wallet %s balance: %w", wallet.ID, err)
	}
	return nil
}

func (repo *MongoWalletRepo) ListLedger(ctx context.Context, walletID string, limit int64) ([]models.WalletLedgerEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := repo.ledgerColl.Find(ctx, bson.M{"wallet_id": walletID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching ledger for wallet %s: %w", walletID, err)
	}
	defer cursor.Close(ctx)

	var entries []models.WalletLedgerEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding ledger entries: %w", err)
	}
	return entries, nil
}
