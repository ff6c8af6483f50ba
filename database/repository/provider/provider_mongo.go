package providerRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	providerColl *mongo.Collection
	serviceColl  *mongo.Collection
}

func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoClient.Database("slotwise")
	return &MongoProviderRepo{
		providerColl: db.Collection("providers"),
		serviceColl:  db.Collection("services"),
	}
}

func (repo *MongoProviderRepo) GetByID(ctx context.Context, providerID string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	if err := repo.providerColl.FindOne(ctx, bson.M{"id": providerID}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("provider %s not found: %w", providerID, err)
	}
	return &provider, nil
}

func (repo *MongoProviderRepo) GetByHandle(ctx context.Context, handle string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	if err := repo.providerColl.FindOne(ctx, bson.M{"handle": handle}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("provider with handle %s not found: %w", handle, err)
	}
	return &provider, nil
}

func (repo *MongoProviderRepo) GetServiceByID(ctx context.Context, serviceID string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	if err := repo.serviceColl.FindOne(ctx, bson.M{"id": serviceID}).Decode(&service); err != nil {
		return nil, fmt.Errorf("service %s not found: %w", serviceID, err)
	}
	return &service, nil
}

func (repo *MongoProviderRepo) ListServicesByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := repo.serviceColl.Find(ctx, bson.M{"provider_id": providerID, "is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching services for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}
