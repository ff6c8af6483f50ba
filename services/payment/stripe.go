package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"slotwise/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeGateway implements Gateway over Stripe Checkout Sessions.
// stripe.Key must be set before use (done in main).
type StripeGateway struct {
	Currency        string
	WebhookSecret   string
	SuccessURL      string
	CancelURL       string
	CreditPriceCent int64
}

func NewStripeGateway(currency, webhookSecret, successURL, cancelURL string, creditPriceCents int64) *StripeGateway {
	return &StripeGateway{
		Currency:        currency,
		WebhookSecret:   webhookSecret,
		SuccessURL:      successURL,
		CancelURL:       cancelURL,
		CreditPriceCent: creditPriceCents,
	}
}

func (g *StripeGateway) CreateTopupIntent(ctx context.Context, providerID string, credits int) (Intent, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.SuccessURL),
		CancelURL:         stripe.String(g.CancelURL),
		ClientReferenceID: stripe.String(providerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(int64(credits)),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.Currency),
					UnitAmount: stripe.Int64(g.CreditPriceCent),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Booking confirmation credit"),
					},
				},
			},
		},
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("stripe top-up session for provider %s: %w", providerID, err)
	}
	return Intent{CheckoutURL: s.URL, Reference: s.ID}, nil
}

func (g *StripeGateway) CreatePerBookingIntent(ctx context.Context, bookingID string, amountCents int64) (Intent, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.SuccessURL),
		CancelURL:         stripe.String(g.CancelURL),
		ClientReferenceID: stripe.String(bookingID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.Currency),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Service booking"),
					},
				},
			},
		},
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("stripe booking session for %s: %w", bookingID, err)
	}
	return Intent{CheckoutURL: s.URL, Reference: s.ID}, nil
}

func (g *StripeGateway) VerifyWebhook(signature string, rawBody []byte) bool {
	_, err := webhook.ConstructEvent(rawBody, signature, g.WebhookSecret)
	return err == nil
}

// ParseEvent decodes an already-verified webhook body. Signature
// checking happens in VerifyWebhook.
func (g *StripeGateway) ParseEvent(rawBody []byte) (models.PaymentEvent, error) {
	var event stripe.Event
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return models.PaymentEvent{}, fmt.Errorf("parse stripe event: %w", err)
	}

	refID, _ := event.Data.Object["id"].(string)

	switch string(event.Type) {
	case "checkout.session.completed", "payment_intent.succeeded":
		return models.PaymentEvent{Type: models.EventPaymentSucceeded, RefID: refID}, nil
	case "checkout.session.expired", "payment_intent.payment_failed":
		return models.PaymentEvent{Type: models.EventPaymentFailed, RefID: refID}, nil
	default:
		return models.PaymentEvent{}, fmt.Errorf("unhandled stripe event type %s", event.Type)
	}
}
