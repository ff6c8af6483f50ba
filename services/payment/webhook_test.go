package payment

import (
	"testing"

	"slotwise/models"
)

func TestResolveEvent_SucceededConfirmsPendingBooking(t *testing.T) {
	booking := &models.Booking{ID: "bk1", Status: models.BookingPending}

	res := ResolveEvent(models.EventPaymentSucceeded, models.PaymentInitiated, booking)

	if !res.ShouldUpdatePayment || !res.ShouldConfirmBooking || !res.ShouldCreateReceiptNotification {
		t.Fatalf("expected full success transition, got %+v", res)
	}
	if res.NextPaymentStatus != models.PaymentSucceeded || res.AlreadyProcessed {
		t.Fatalf("unexpected resolution %+v", res)
	}
}

func TestResolveEvent_SucceededIdempotent(t *testing.T) {
	res := ResolveEvent(models.EventPaymentSucceeded, models.PaymentSucceeded, &models.Booking{Status: models.BookingPending})

	if !res.AlreadyProcessed || res.ShouldUpdatePayment || res.ShouldConfirmBooking {
		t.Fatalf("repeat success event must be a no-op, got %+v", res)
	}
}

func TestResolveEvent_SucceededWithoutBooking(t *testing.T) {
	res := ResolveEvent(models.EventPaymentSucceeded, models.PaymentInitiated, nil)

	if !res.ShouldUpdatePayment {
		t.Fatalf("payment record should still update, got %+v", res)
	}
	if res.ShouldConfirmBooking || res.ShouldCreateReceiptNotification {
		t.Fatalf("no booking to confirm, got %+v", res)
	}
}

func TestResolveEvent_SucceededBookingAlreadyConfirmed(t *testing.T) {
	booking := &models.Booking{ID: "bk1", Status: models.BookingConfirmed}

	res := ResolveEvent(models.EventPaymentSucceeded, models.PaymentInitiated, booking)

	if res.ShouldConfirmBooking {
		t.Fatalf("confirmed booking must not be re-confirmed, got %+v", res)
	}
	if !res.ShouldUpdatePayment {
		t.Fatalf("payment record should still update, got %+v", res)
	}
}

func TestResolveEvent_FailedMarksPayment(t *testing.T) {
	res := ResolveEvent(models.EventPaymentFailed, models.PaymentInitiated, nil)

	if res.NextPaymentStatus != models.PaymentFailed || !res.ShouldUpdatePayment {
		t.Fatalf("expected failure transition, got %+v", res)
	}
	if res.ShouldConfirmBooking {
		t.Fatalf("failure must never confirm a booking, got %+v", res)
	}
}

func TestResolveEvent_FailedIdempotent(t *testing.T) {
	res := ResolveEvent(models.EventPaymentFailed, models.PaymentFailed, nil)

	if !res.AlreadyProcessed || res.ShouldUpdatePayment {
		t.Fatalf("repeat failure event must be a no-op, got %+v", res)
	}
}

func TestResolveEvent_FailedNeverDowngradesSuccess(t *testing.T) {
	res := ResolveEvent(models.EventPaymentFailed, models.PaymentSucceeded, nil)

	if res.NextPaymentStatus != models.PaymentSucceeded || !res.AlreadyProcessed || res.ShouldUpdatePayment {
		t.Fatalf("succeeded payment must not be downgraded, got %+v", res)
	}
}
