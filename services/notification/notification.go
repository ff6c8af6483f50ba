package notification

import (
	"context"
	"time"

	notificationRepo "slotwise/database/repository/notification"
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// Service renders and stores outbound notification records. Delivery is
// handled by an external dispatcher reading the notifications collection.
type Service interface {
	BookingCreated(ctx context.Context, booking models.Booking, customer *models.Customer, provider models.Provider, svc models.Service) error
	BookingConfirmed(ctx context.Context, booking models.Booking, customer *models.Customer, svc models.Service) error
	BookingCancelled(ctx context.Context, booking models.Booking, customer *models.Customer, refunded bool) error
	BookingRescheduled(ctx context.Context, booking models.Booking, customer *models.Customer, provider models.Provider, svc models.Service, previousStartAt time.Time) error
	ProviderLowCredits(ctx context.Context, bookingID string, provider models.Provider, creditsRemaining int) error
	PaymentReceipt(ctx context.Context, booking models.Booking, customer *models.Customer, payment models.PaymentRecord) error
	BookingReminder(ctx context.Context, payload models.ReminderPayload) error
}

type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
}

func NewNotificationService(repo notificationRepo.NotificationRepository) Service {
	return &DefaultNotificationService{Repo: repo}
}

// fanOut writes one record per reachable channel. Email needs an email
// address, WhatsApp needs a phone number; a recipient with neither gets
// no records, which is not an error.
func (s *DefaultNotificationService) fanOut(ctx context.Context, bookingID, email, phone string, payload map[string]any) error {
	logger := utils.GetLogger()

	if email != "" {
		n := &models.Notification{
			BookingID: bookingID,
			Channel:   models.ChannelEmail,
			Recipient: email,
			Payload:   payload,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Repo.Insert(ctx, n); err != nil {
			logger.Error("failed to queue email notification", zap.String("booking_id", bookingID), zap.Error(err))
			return err
		}
	}
	if phone != "" {
		n := &models.Notification{
			BookingID: bookingID,
			Channel:   models.ChannelWhatsApp,
			Recipient: phone,
			Payload:   payload,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Repo.Insert(ctx, n); err != nil {
			logger.Error("failed to queue whatsapp notification", zap.String("booking_id", bookingID), zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *DefaultNotificationService) fanOutToCustomer(ctx context.Context, bookingID string, customer *models.Customer, payload map[string]any) error {
	if customer == nil {
		return nil
	}
	return s.fanOut(ctx, bookingID, customer.Email, customer.Phone, payload)
}

func (s *DefaultNotificationService) BookingCreated(ctx context.Context, booking models.Booking, customer *models.Customer, provider models.Provider, svc models.Service) error {
	payload := map[string]any{
		"kind":         "booking_created",
		"bookingId":    booking.ID,
		"providerName": provider.DisplayName,
		"serviceName":  svc.Name,
		"startAt":      booking.StartAt.Format(time.RFC3339),
	}
	return s.fanOutToCustomer(ctx, booking.ID, customer, payload)
}

func (s *DefaultNotificationService) BookingConfirmed(ctx context.Context, booking models.Booking, customer *models.Customer, svc models.Service) error {
	payload := map[string]any{
		"kind":        "booking_confirmed",
		"bookingId":   booking.ID,
		"serviceName": svc.Name,
		"startAt":     booking.StartAt.Format(time.RFC3339),
	}
	return s.fanOutToCustomer(ctx, booking.ID, customer, payload)
}

func (s *DefaultNotificationService) BookingCancelled(ctx context.Context, booking models.Booking, customer *models.Customer, refunded bool) error {
	payload := map[string]any{
		"kind":      "booking_cancelled",
		"bookingId": booking.ID,
		"startAt":   booking.StartAt.Format(time.RFC3339),
		"refunded":  refunded,
	}
	return s.fanOutToCustomer(ctx, booking.ID, customer, payload)
}

// BookingRescheduled tells the customer their booking moved, carrying
// both the previous and the new start time.
func (s *DefaultNotificationService) BookingRescheduled(ctx context.Context, booking models.Booking, customer *models.Customer, provider models.Provider, svc models.Service, previousStartAt time.Time) error {
	payload := map[string]any{
		"kind":            "booking_customer_rescheduled",
		"bookingId":       booking.ID,
		"previousStartAt": previousStartAt.Format(time.RFC3339),
		"newStartAt":      booking.StartAt.Format(time.RFC3339),
		"providerName":    provider.DisplayName,
		"serviceName":     svc.Name,
	}
	if customer != nil && customer.Name != "" {
		payload["customerName"] = customer.Name
	}
	return s.fanOutToCustomer(ctx, booking.ID, customer, payload)
}

// ProviderLowCredits warns the provider their wallet is nearly empty
// after a credit consumption.
func (s *DefaultNotificationService) ProviderLowCredits(ctx context.Context, bookingID string, provider models.Provider, creditsRemaining int) error {
	payload := map[string]any{
		"kind":             "provider_low_credits_warning",
		"providerName":     provider.DisplayName,
		"creditsRemaining": creditsRemaining,
	}
	return s.fanOut(ctx, bookingID, provider.Email, provider.Phone, payload)
}

// BookingReminder is invoked by the reminder worker when a scheduled
// task fires.
func (s *DefaultNotificationService) BookingReminder(ctx context.Context, p models.ReminderPayload) error {
	if p.Recipient == "" {
		return nil
	}
	n := &models.Notification{
		BookingID: p.BookingID,
		Channel:   models.ChannelEmail,
		Recipient: p.Recipient,
		Payload: map[string]any{
			"kind":         "booking_reminder",
			"bookingId":    p.BookingID,
			"customerName": p.CustomerName,
			"serviceName":  p.ServiceName,
			"startAt":      p.StartAt,
		},
		CreatedAt: time.Now().UTC(),
	}
	return s.Repo.Insert(ctx, n)
}

func (s *DefaultNotificationService) PaymentReceipt(ctx context.Context, booking models.Booking, customer *models.Customer, payment models.PaymentRecord) error {
	payload := map[string]any{
		"kind":        "payment_receipt",
		"bookingId":   booking.ID,
		"amountCents": payment.AmountCents,
		"gateway":     payment.Gateway,
		"reference":   payment.GatewayRef,
	}
	return s.fanOutToCustomer(ctx, booking.ID, customer, payload)
}
