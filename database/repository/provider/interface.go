package providerRepo

import (
	"context"

	"slotwise/models"
)

// ProviderRepository reads provider profiles and their service catalog.
type ProviderRepository interface {
	GetByID(ctx context.Context, providerID string) (*models.Provider, error)
	GetByHandle(ctx context.Context, handle string) (*models.Provider, error)
	GetServiceByID(ctx context.Context, serviceID string) (*models.Service, error)
	ListServicesByProvider(ctx context.Context, providerID string) ([]models.Service, error)
}
