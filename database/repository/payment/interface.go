package paymentRepo

import (
	"context"

	"slotwise/models"
)

// PaymentRepository persists gateway charge records. Lookups key on the
// gateway reference because that is all a webhook carries.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.PaymentRecord) error
	GetByGatewayRef(ctx context.Context, gatewayRef string) (*models.PaymentRecord, error)
	UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error
	LatestByBooking(ctx context.Context, bookingID string) (*models.PaymentRecord, error)
}
