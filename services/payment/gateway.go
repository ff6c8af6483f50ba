package payment

import (
	"context"

	"slotwise/models"
)

// Intent is what a gateway hands back for a checkout the payer must
// complete out of band.
type Intent struct {
	CheckoutURL string `json:"checkoutUrl"`
	Reference   string `json:"reference"`
}

// Gateway abstracts the external payment processor. Implementations
// perform network calls; callers must treat them as fallible and apply
// their own timeout/retry policy.
type Gateway interface {
	CreateTopupIntent(ctx context.Context, providerID string, credits int) (Intent, error)
	CreatePerBookingIntent(ctx context.Context, bookingID string, amountCents int64) (Intent, error)
	VerifyWebhook(signature string, rawBody []byte) bool
	ParseEvent(rawBody []byte) (models.PaymentEvent, error)
}
