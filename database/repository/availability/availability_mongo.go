package availabilityRepo

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

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	rulesColl    *mongo.Collection
	blackoutColl *mongo.Collection
}

func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database("slotwise")
	return &MongoAvailabilityRepo{
		rulesColl:    db.Collection("availability_rules"),
		blackoutColl: db.Collection("blackout_dates"),
	}
}

func (repo *MongoAvailabilityRepo) GetRulesByProvider(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Stable rule order keeps slot generation deterministic.
	opts := options.Find().SetSort(bson.D{{Key: "dow", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := repo.rulesColl.Find(ctx, bson.M{"provider_id": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching rules for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("error decoding rules: %w", err)
	}
	return rules, nil
}

func (repo *MongoAvailabilityRepo) CreateRule(ctx context.Context, rule *models.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if _, err := repo.rulesColl.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("error creating availability rule: %w", err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) DeleteRule(ctx context.Context, providerID, ruleID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.rulesColl.DeleteOne(ctx, bson.M{"id": ruleID, "provider_id": providerID})
	if err != nil {
		return fmt.Errorf("error deleting rule %s: %w", ruleID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *MongoAvailabilityRepo) GetBlackoutsInRange(ctx context.Context, providerID, fromDay, toDay string) ([]models.BlackoutDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"day":         bson.M{"$gte": fromDay, "$lte": toDay},
	}
	cursor, err := repo.blackoutColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching blackouts for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var blackouts []models.BlackoutDate
	if err := cursor.All(ctx, &blackouts); err != nil {
		return nil, fmt.Errorf("error decoding blackouts: %w", err)
	}
	return blackouts, nil
}

func (repo *MongoAvailabilityRepo) CreateBlackout(ctx context.Context, blackout *models.BlackoutDate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if blackout.ID == "" {
		blackout.ID = uuid.New().String()
	}
	if _, err := repo.blackoutColl.InsertOne(ctx, blackout); err != nil {
		return fmt.Errorf("error creating blackout date: %w", err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) DeleteBlackout(ctx context.Context, providerID, blackoutID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.blackoutColl.DeleteOne(ctx, bson.M{"id": blackoutID, "provider_id": providerID})
	if err != nil {
		return fmt.Errorf("error deleting blackout %s: %w", blackoutID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
