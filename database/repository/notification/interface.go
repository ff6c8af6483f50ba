package notificationRepo

import (
	"context"

	"slotwise/models"
)

// NotificationRepository stores rendered outbound messages.
type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) error
	ListByBooking(ctx context.Context, bookingID string) ([]models.Notification, error)
}
