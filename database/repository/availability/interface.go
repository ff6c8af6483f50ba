package availabilityRepo

import (
	"context"

	"slotwise/models"
)

// AvailabilityRepository stores a provider's recurring rules and
// date-specific blackouts.
type AvailabilityRepository interface {
	GetRulesByProvider(ctx context.Context, providerID string) ([]models.AvailabilityRule, error)
	CreateRule(ctx context.Context, rule *models.AvailabilityRule) error
	DeleteRule(ctx context.Context, providerID, ruleID string) error

	GetBlackoutsInRange(ctx context.Context, providerID, fromDay, toDay string) ([]models.BlackoutDate, error)
	CreateBlackout(ctx context.Context, blackout *models.BlackoutDate) error
	DeleteBlackout(ctx context.Context, providerID, blackoutID string) error
}
