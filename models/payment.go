package models

import "time"

type PaymentStatus string

const (
	PaymentInitiated PaymentStatus = "initiated"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentEventType string

const (
	EventPaymentSucceeded PaymentEventType = "payment.succeeded"
	EventPaymentFailed    PaymentEventType = "payment.failed"
)

// PaymentEvent is a parsed gateway webhook event.
type PaymentEvent struct {
	Type  PaymentEventType `json:"type"`
	RefID string           `json:"refId"`
}

// PaymentRecord tracks one gateway charge (per-booking checkout or
// credit top-up).
type PaymentRecord struct {
	ID          string            `bson:"id" json:"id"`
	ProviderID  string            `bson:"provider_id" json:"providerId"`
	BookingID   string            `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	Status      PaymentStatus     `bson:"status" json:"status"`
	AmountCents int64             `bson:"amount_cents" json:"amountCents"`
	Gateway     string            `bson:"gateway" json:"gateway"`
	GatewayRef  string            `bson:"gateway_ref" json:"gatewayRef"`
	Metadata    map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updated_at" json:"updatedAt"`
}
