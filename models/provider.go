package models

// Provider is the owner of availability rules, services and a wallet.
type Provider struct {
	ID              string `bson:"id" json:"id"`
	DisplayName     string `bson:"display_name" json:"displayName"`
	Handle          string `bson:"handle" json:"handle"`
	Bio             string `bson:"bio,omitempty" json:"bio,omitempty"`
	Email           string `bson:"email,omitempty" json:"email,omitempty"`
	Phone           string `bson:"phone,omitempty" json:"phone,omitempty"`
	Currency        string `bson:"currency" json:"currency"`
	LateCancelHours int    `bson:"late_cancel_hours" json:"lateCancelHours"`
}

// Service is one bookable offering of a provider.
type Service struct {
	ID             string `bson:"id" json:"id"`
	ProviderID     string `bson:"provider_id" json:"providerId"`
	Name           string `bson:"name" json:"name"`
	Description    string `bson:"description,omitempty" json:"description,omitempty"`
	DurationMin    int    `bson:"duration_min" json:"durationMin"`
	BasePriceCents int64  `bson:"base_price_cents" json:"basePriceCents"`
	IsActive       bool   `bson:"is_active" json:"isActive"`
}
