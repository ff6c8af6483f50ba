package bookingRepo

import (
	"context"
	"time"

	"slotwise/models"
)

// BookingRepository persists bookings and answers the overlap-window
// queries the availability filter feeds on.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListInWindow(ctx context.Context, providerID, serviceID string, from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus, payMode models.PayMode) error
	UpdateTimes(ctx context.Context, bookingID string, startAt, endAt time.Time) error
	AppendNote(ctx context.Context, bookingID, note string) error

	CountInWindow(ctx context.Context, providerID string, status models.BookingStatus, startFrom, startTo time.Time) (int64, error)
	CountCreatedSince(ctx context.Context, providerID string, status models.BookingStatus, since time.Time) (int64, error)

	GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error)
	UpsertCustomer(ctx context.Context, customer *models.Customer) error
}
