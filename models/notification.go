package models

import "time"

type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelWhatsApp NotificationChannel = "whatsapp"
)

// Notification is a queued outbound message. Delivery is handled by an
// external dispatcher; this service only renders and stores the record.
type Notification struct {
	ID        string              `bson:"id" json:"id"`
	BookingID string              `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	Channel   NotificationChannel `bson:"channel" json:"channel"`
	Recipient string              `bson:"recipient" json:"recipient"`
	Payload   map[string]any      `bson:"payload" json:"payload"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
}

// ReminderPayload is the asynq task body for booking reminders.
type ReminderPayload struct {
	BookingID    string `json:"bookingId"`
	ProviderID   string `json:"providerId"`
	Recipient    string `json:"recipient"`
	CustomerName string `json:"customerName"`
	ServiceName  string `json:"serviceName"`
	StartAt      string `json:"startAt"`
}
