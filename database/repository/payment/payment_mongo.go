package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo() PaymentRepository {
	return &MongoPaymentRepo{
		coll: database.MongoClient.Database("slotwise").Collection("payments"),
	}
}

func (repo *MongoPaymentRepo) Create(ctx context.Context, payment *models.PaymentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now
	if _, err := repo.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("error creating payment record: %w", err)
	}
	return nil
}

func (repo *MongoPaymentRepo) GetByGatewayRef(ctx context.Context, gatewayRef string) (*models.PaymentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.PaymentRecord
	if err := repo.coll.FindOne(ctx, bson.M{"gateway_ref": gatewayRef}).Decode(&payment); err != nil {
		return nil, fmt.Errorf("payment with reference %s not found: %w", gatewayRef, err)
	}
	return &payment, nil
}

func (repo *MongoPaymentRepo) UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": paymentID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("error updating payment %s status: %w", paymentID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *MongoPaymentRepo) LatestByBooking(ctx context.Context, bookingID string) (*models.PaymentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var payment models.PaymentRecord
	err := repo.coll.FindOne(ctx, bson.M{"booking_id": bookingID}, opts).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching payment for booking %s: %w", bookingID, err)
	}
	return &payment, nil
}
