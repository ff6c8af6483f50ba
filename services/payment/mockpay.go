package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"slotwise/models"
)

// MockGateway generates deterministic fake checkout URLs. It stands in
// for a real processor in development and tests; webhooks are accepted
// unverified.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) CreateTopupIntent(_ context.Context, providerID string, credits int) (Intent, error) {
	return Intent{
		CheckoutURL: fmt.Sprintf("https://mockpay.local/topup?provider=%s&credits=%d", providerID, credits),
		Reference:   fmt.Sprintf("mockpay_topup_%s", providerID),
	}, nil
}

func (g *MockGateway) CreatePerBookingIntent(_ context.Context, bookingID string, amountCents int64) (Intent, error) {
	return Intent{
		CheckoutURL: fmt.Sprintf("https://mockpay.local/booking/%s?amount=%d", bookingID, amountCents),
		Reference:   fmt.Sprintf("mockpay_%s", bookingID),
	}, nil
}

func (g *MockGateway) VerifyWebhook(_ string, _ []byte) bool {
	return true
}

func (g *MockGateway) ParseEvent(rawBody []byte) (models.PaymentEvent, error) {
	var payload struct {
		Status string `json:"status"`
		RefID  string `json:"refId"`
	}
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return models.PaymentEvent{}, fmt.Errorf("invalid webhook payload: %w", err)
	}

	eventType := models.EventPaymentFailed
	if payload.Status == "succeeded" {
		eventType = models.EventPaymentSucceeded
	}
	return models.PaymentEvent{Type: eventType, RefID: payload.RefID}, nil
}
