package booking

import (
	"context"
	"fmt"
	"time"

	availabilityRepo "slotwise/database/repository/availability"
	bookingRepo "slotwise/database/repository/booking"
	paymentRepo "slotwise/database/repository/payment"
	providerRepo "slotwise/database/repository/provider"
	walletRepo "slotwise/database/repository/wallet"
	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/services/notification"
	"slotwise/services/payment"
	"slotwise/services/policy"
	"slotwise/services/tasks"
	"slotwise/services/wallet"
	"slotwise/utils"

	"go.uber.org/zap"
)

// DefaultBookingService wires the pure domain functions to persistence,
// the payment gateway and the notification/reminder pipeline.
type DefaultBookingService struct {
	AvailabilityRepo availabilityRepo.AvailabilityRepository
	BookingRepo      bookingRepo.BookingRepository
	WalletRepo       walletRepo.WalletRepository
	PaymentRepo      paymentRepo.PaymentRepository
	ProviderRepo     providerRepo.ProviderRepository
	Notifier         notification.Service
	Gateway          payment.Gateway
	GatewayName      string
	Scheduler        tasks.ReminderScheduler

	LookaheadDays    int
	CreditPriceCents int64
	ReminderLead     time.Duration
}

const dayKeyLayout = "2006-01-02"

// lowCreditsWarningThreshold triggers a provider warning when the
// balance after a consumption falls to this many credits or fewer.
const lowCreditsWarningThreshold = 2

// availableSlots loads everything slot generation needs and returns the
// filtered bookable set starting at from.
func (s *DefaultBookingService) availableSlots(ctx context.Context, providerID string, svc models.Service, from time.Time, excludeBookingID string) ([]models.AvailabilitySlot, error) {
	now := time.Now().UTC()
	if from.IsZero() {
		from = now
	}

	lookahead := s.LookaheadDays
	if lookahead <= 0 {
		lookahead = availability.DefaultLookaheadDays
	}

	rules, err := s.AvailabilityRepo.GetRulesByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	horizon := dayStart.AddDate(0, 0, lookahead)
	blackouts, err := s.AvailabilityRepo.GetBlackoutsInRange(ctx, providerID,
		dayStart.Format(dayKeyLayout), horizon.Format(dayKeyLayout))
	if err != nil {
		return nil, err
	}

	bookings, err := s.BookingRepo.ListInWindow(ctx, providerID, "", dayStart, horizon, nil)
	if err != nil {
		return nil, err
	}
	if excludeBookingID != "" {
		kept := bookings[:0]
		for _, b := range bookings {
			if b.ID != excludeBookingID {
				kept = append(kept, b)
			}
		}
		bookings = kept
	}

	slots := availability.GenerateBookableSlots(rules, blackouts, svc.DurationMin, from, lookahead)
	return availability.FilterSlotsByBookings(slots, bookings, now), nil
}

func (s *DefaultBookingService) serviceForProvider(ctx context.Context, providerID, serviceID string) (*models.Service, error) {
	svc, err := s.ProviderRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID != providerID || !svc.IsActive {
		return nil, ErrInactiveService
	}
	return svc, nil
}

func (s *DefaultBookingService) CheckAvailability(ctx context.Context, providerID, serviceID string, from time.Time) ([]models.AvailabilitySlot, error) {
	svc, err := s.serviceForProvider(ctx, providerID, serviceID)
	if err != nil {
		return nil, err
	}
	return s.availableSlots(ctx, providerID, *svc, from, "")
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	svc, err := s.serviceForProvider(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	startAt := req.StartAt.UTC()
	endAt := startAt.Add(time.Duration(svc.DurationMin) * time.Minute)

	// Re-check the requested slot against current availability so a
	// stale client cannot double-book.
	slots, err := s.availableSlots(ctx, req.ProviderID, *svc, time.Now().UTC(), "")
	if err != nil {
		return nil, err
	}
	if !slotOffered(slots, startAt, endAt) {
		return nil, ErrSlotUnavailable
	}

	if req.Customer != nil {
		if err := s.BookingRepo.UpsertCustomer(ctx, req.Customer); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		StartAt:    startAt,
		EndAt:      endAt,
		Status:     models.BookingPending,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Customer != nil {
		booking.CustomerID = req.Customer.ID
	}
	if err := s.BookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// Notifications and reminders are best effort; the booking stands
	// even if queueing fails.
	provider, err := s.ProviderRepo.GetByID(ctx, req.ProviderID)
	if err == nil {
		if err := s.Notifier.BookingCreated(ctx, *booking, req.Customer, *provider, *svc); err != nil {
			logger.Warn("failed to queue booking-created notification",
				zap.String("booking_id", booking.ID), zap.Error(err))
		}
	}
	s.scheduleReminder(ctx, *booking, req.Customer, svc.Name)

	return booking, nil
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, booking models.Booking, customer *models.Customer, serviceName string) {
	if s.Scheduler == nil {
		return
	}
	fireAt := booking.StartAt.Add(-s.ReminderLead)
	if !fireAt.After(time.Now().UTC()) {
		return
	}

	payload := models.ReminderPayload{
		BookingID:   booking.ID,
		ProviderID:  booking.ProviderID,
		ServiceName: serviceName,
		StartAt:     booking.StartAt.Format(time.RFC3339),
	}
	if customer != nil {
		payload.Recipient = customer.Email
		payload.CustomerName = customer.Name
	}
	if err := s.Scheduler.ScheduleReminder(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminder",
			zap.String("booking_id", booking.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, providerID, bookingID string) (*ConfirmationOutcome, error) {
	bk, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.ProviderID != providerID {
		return nil, fmt.Errorf("booking %s does not belong to provider %s", bookingID, providerID)
	}
	if bk.Status != models.BookingPending {
		return nil, ErrUnsupportedStatus
	}

	svc, err := s.ProviderRepo.GetServiceByID(ctx, bk.ServiceID)
	if err != nil {
		return nil, err
	}

	w, err := s.WalletRepo.GetByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	var snapshot models.Wallet
	if w != nil {
		snapshot = *w
	} else {
		snapshot = models.Wallet{ProviderID: providerID}
	}

	outcome, err := ConfirmWithWallet(ctx, s.Gateway, snapshot, *bk, svc.BasePriceCents, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if outcome.Confirmed {
		if err := s.WalletRepo.Apply(ctx, outcome.Ledger.Wallet, outcome.Ledger.Entry); err != nil {
			return nil, err
		}
		if err := s.BookingRepo.UpdateStatus(ctx, bookingID, models.BookingConfirmed, models.PayModeCredit); err != nil {
			return nil, err
		}
		s.notifyConfirmed(ctx, outcome.Booking, *svc)

		if outcome.Ledger.Wallet.BalanceCredits <= lowCreditsWarningThreshold {
			if provider, err := s.ProviderRepo.GetByID(ctx, providerID); err == nil {
				if err := s.Notifier.ProviderLowCredits(ctx, bookingID, *provider, outcome.Ledger.Wallet.BalanceCredits); err != nil {
					utils.GetLogger().Warn("failed to queue low-credits warning",
						zap.String("provider_id", providerID), zap.Error(err))
				}
			}
		}
		return &outcome, nil
	}

	record := &models.PaymentRecord{
		ProviderID:  providerID,
		BookingID:   bookingID,
		Status:      models.PaymentInitiated,
		AmountCents: svc.BasePriceCents,
		Gateway:     s.GatewayName,
		GatewayRef:  outcome.Checkout.Reference,
	}
	if err := s.PaymentRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	if err := s.BookingRepo.UpdateStatus(ctx, bookingID, models.BookingPending, models.PayModePerBooking); err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (s *DefaultBookingService) notifyConfirmed(ctx context.Context, bk models.Booking, svc models.Service) {
	var customer *models.Customer
	if bk.CustomerID != "" {
		if c, err := s.BookingRepo.GetCustomerByID(ctx, bk.CustomerID); err == nil {
			customer = c
		}
	}
	if err := s.Notifier.BookingConfirmed(ctx, bk, customer, svc); err != nil {
		utils.GetLogger().Warn("failed to queue booking-confirmed notification",
			zap.String("booking_id", bk.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, providerID, bookingID string) (*CancelResult, error) {
	bk, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.ProviderID != providerID {
		return nil, fmt.Errorf("booking %s does not belong to provider %s", bookingID, providerID)
	}
	if bk.Status != models.BookingPending && bk.Status != models.BookingConfirmed {
		return nil, ErrUnsupportedStatus
	}

	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	verdict, err := policy.EvaluateCancellationPolicy(
		bk.StartAt.Format(time.RFC3339), provider.LateCancelHours, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	result := &CancelResult{
		RefundEligible: verdict.RefundEligible,
		IsLate:         verdict.IsLate,
	}

	// A confirmed credit-paid booking gets its credit back when the
	// cancellation beats the cutoff.
	if verdict.RefundEligible && bk.Status == models.BookingConfirmed && bk.PayMode == models.PayModeCredit {
		w, err := s.WalletRepo.GetByProvider(ctx, providerID)
		if err != nil {
			return nil, err
		}
		if w != nil {
			res := wallet.RefundCreditForCancellation(*w, *bk, time.Now().UTC())
			if err := s.WalletRepo.Apply(ctx, res.Wallet, res.Entry); err != nil {
				return nil, err
			}
			result.Refund = &res
		}
	}

	if verdict.RefundEligible && bk.PayMode == models.PayModePerBooking {
		pay, err := s.PaymentRepo.LatestByBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if pay != nil && pay.Status == models.PaymentSucceeded {
			if err := s.PaymentRepo.UpdateStatus(ctx, pay.ID, models.PaymentRefunded); err != nil {
				return nil, err
			}
		}
	}

	if err := s.BookingRepo.UpdateStatus(ctx, bookingID, models.BookingCancelled, ""); err != nil {
		return nil, err
	}
	bk.Status = models.BookingCancelled
	result.Booking = *bk

	var customer *models.Customer
	if bk.CustomerID != "" {
		if c, err := s.BookingRepo.GetCustomerByID(ctx, bk.CustomerID); err == nil {
			customer = c
		}
	}
	if err := s.Notifier.BookingCancelled(ctx, *bk, customer, result.Refund != nil); err != nil {
		utils.GetLogger().Warn("failed to queue booking-cancelled notification",
			zap.String("booking_id", bk.ID), zap.Error(err))
	}

	return result, nil
}

func (s *DefaultBookingService) RescheduleBooking(ctx context.Context, providerID, bookingID string, newStart time.Time) (*models.Booking, error) {
	bk, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.ProviderID != providerID {
		return nil, fmt.Errorf("booking %s does not belong to provider %s", bookingID, providerID)
	}
	if bk.Status != models.BookingPending && bk.Status != models.BookingConfirmed {
		return nil, ErrUnsupportedStatus
	}

	svc, err := s.ProviderRepo.GetServiceByID(ctx, bk.ServiceID)
	if err != nil {
		return nil, err
	}

	newStart = newStart.UTC()
	newEnd := newStart.Add(time.Duration(svc.DurationMin) * time.Minute)

	// The booking's own slot must not block its new one.
	slots, err := s.availableSlots(ctx, providerID, *svc, time.Now().UTC(), bookingID)
	if err != nil {
		return nil, err
	}
	if !slotOffered(slots, newStart, newEnd) {
		return nil, ErrSlotUnavailable
	}

	if err := s.BookingRepo.UpdateTimes(ctx, bookingID, newStart, newEnd); err != nil {
		return nil, err
	}
	previousStart := bk.StartAt
	bk.StartAt = newStart
	bk.EndAt = newEnd

	var customer *models.Customer
	if bk.CustomerID != "" {
		if c, err := s.BookingRepo.GetCustomerByID(ctx, bk.CustomerID); err == nil {
			customer = c
		}
	}
	if provider, err := s.ProviderRepo.GetByID(ctx, providerID); err == nil {
		if err := s.Notifier.BookingRescheduled(ctx, *bk, customer, *provider, *svc, previousStart); err != nil {
			utils.GetLogger().Warn("failed to queue reschedule notice",
				zap.String("booking_id", bk.ID), zap.Error(err))
		}
	}
	return bk, nil
}

func (s *DefaultBookingService) TopUpWallet(ctx context.Context, providerID string, credits int) (*TopupResult, error) {
	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	w, err := s.WalletRepo.GetByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = &models.Wallet{ProviderID: providerID, Currency: provider.Currency}
		if err := s.WalletRepo.Create(ctx, w); err != nil {
			return nil, err
		}
	}

	intent, err := s.Gateway.CreateTopupIntent(ctx, providerID, credits)
	if err != nil {
		return nil, fmt.Errorf("error creating top-up checkout: %w", err)
	}

	res, err := wallet.AddCredits(*w, credits, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.WalletRepo.Apply(ctx, res.Wallet, res.Entry); err != nil {
		return nil, err
	}

	record := &models.PaymentRecord{
		ProviderID:  providerID,
		Status:      models.PaymentSucceeded,
		AmountCents: int64(credits) * s.CreditPriceCents,
		Gateway:     s.GatewayName,
		GatewayRef:  intent.Reference,
	}
	if err := s.PaymentRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TopupResult{
		Wallet:   res.Wallet,
		Entry:    res.Entry,
		Payment:  *record,
		Checkout: intent,
	}, nil
}

func (s *DefaultBookingService) HandlePaymentWebhook(ctx context.Context, signature string, rawBody []byte) (*WebhookOutcome, error) {
	if !s.Gateway.VerifyWebhook(signature, rawBody) {
		return nil, ErrBadWebhookSignature
	}

	event, err := s.Gateway.ParseEvent(rawBody)
	if err != nil {
		return nil, err
	}

	pay, err := s.PaymentRepo.GetByGatewayRef(ctx, event.RefID)
	if err != nil {
		return nil, err
	}

	var bk *models.Booking
	if pay.BookingID != "" {
		bk, err = s.BookingRepo.GetByID(ctx, pay.BookingID)
		if err != nil {
			return nil, err
		}
	}

	resolution := payment.ResolveEvent(event.Type, pay.Status, bk)
	outcome := &WebhookOutcome{
		Resolution: resolution,
		PaymentID:  pay.ID,
		BookingID:  pay.BookingID,
	}
	if resolution.AlreadyProcessed {
		return outcome, nil
	}

	if resolution.ShouldUpdatePayment {
		if err := s.PaymentRepo.UpdateStatus(ctx, pay.ID, resolution.NextPaymentStatus); err != nil {
			return nil, err
		}
		pay.Status = resolution.NextPaymentStatus
	}

	if resolution.ShouldConfirmBooking && bk != nil {
		if err := s.BookingRepo.UpdateStatus(ctx, bk.ID, models.BookingConfirmed, models.PayModePerBooking); err != nil {
			return nil, err
		}
		bk.Status = models.BookingConfirmed
		bk.PayMode = models.PayModePerBooking
		if svc, err := s.ProviderRepo.GetServiceByID(ctx, bk.ServiceID); err == nil {
			s.notifyConfirmed(ctx, *bk, *svc)
		}
	}

	if resolution.ShouldCreateReceiptNotification && bk != nil {
		var customer *models.Customer
		if bk.CustomerID != "" {
			if c, err := s.BookingRepo.GetCustomerByID(ctx, bk.CustomerID); err == nil {
				customer = c
			}
		}
		if err := s.Notifier.PaymentReceipt(ctx, *bk, customer, *pay); err != nil {
			utils.GetLogger().Warn("failed to queue payment receipt",
				zap.String("booking_id", bk.ID), zap.Error(err))
		}
	}

	return outcome, nil
}

func (s *DefaultBookingService) GetWallet(ctx context.Context, providerID string) (*models.Wallet, []models.WalletLedgerEntry, error) {
	w, err := s.WalletRepo.GetByProvider(ctx, providerID)
	if err != nil {
		return nil, nil, err
	}
	if w == nil {
		return nil, nil, nil
	}
	entries, err := s.WalletRepo.ListLedger(ctx, w.ID, 50)
	if err != nil {
		return nil, nil, err
	}
	return w, entries, nil
}

func slotOffered(slots []models.AvailabilitySlot, start, end time.Time) bool {
	for _, slot := range slots {
		if slot.Start.Equal(start) && slot.End.Equal(end) {
			return true
		}
	}
	return false
}
