package models

import "time"

// AvailabilityRule is a recurring weekly open window for one provider.
// Multiple rules may target the same day of week (e.g., split morning
// and afternoon shifts).
type AvailabilityRule struct {
	ID         string `bson:"id" json:"id"`
	ProviderID string `bson:"provider_id" json:"providerId"`
	DayOfWeek  int    `bson:"dow" json:"dow"`              // 0 = Sunday .. 6 = Saturday
	StartTime  string `bson:"start_time" json:"startTime"` // "HH:MM" or "HH:MM:SS"
	EndTime    string `bson:"end_time" json:"endTime"`
}

// BlackoutDate removes a whole calendar date from availability
// regardless of matching rules.
type BlackoutDate struct {
	ID         string `bson:"id" json:"id"`
	ProviderID string `bson:"provider_id" json:"providerId"`
	Day        string `bson:"day" json:"day"` // "YYYY-MM-DD"
	Reason     string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// AvailabilitySlot is a concrete, bookable time window. Derived value,
// computed fresh per request and never persisted.
type AvailabilitySlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
