package notificationRepo

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

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

func NewMongoNotificationRepo() NotificationRepository {
	return &MongoNotificationRepo{
		coll: database.MongoClient.Database("slotwise").Collection("notifications"),
	}
}

func (repo *MongoNotificationRepo) Insert(ctx context.Context, notification *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	if _, err := repo.coll.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("error inserting notification: %w", err)
	}
	return nil
}

func (repo *MongoNotificationRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching notifications for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("error decoding notifications: %w", err)
	}
	return notifications, nil
}
