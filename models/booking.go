package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no_show"
)

type PayMode string

const (
	PayModeCredit     PayMode = "credit"
	PayModePerBooking PayMode = "per_booking"
)

// Booking represents a placed booking record.
type Booking struct {
	ID         string        `bson:"id" json:"id"`
	ProviderID string        `bson:"provider_id" json:"providerId"`
	ServiceID  string        `bson:"service_id" json:"serviceId"`
	CustomerID string        `bson:"customer_id,omitempty" json:"customerId,omitempty"`
	StartAt    time.Time     `bson:"start_at" json:"startAt"`
	EndAt      time.Time     `bson:"end_at" json:"endAt"`
	Status     BookingStatus `bson:"status" json:"status"`
	PayMode    PayMode       `bson:"pay_mode,omitempty" json:"payMode,omitempty"`
	Notes      string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Customer is the minimal contact record bookings reference for
// notifications.
type Customer struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}
