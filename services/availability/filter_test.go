package availability

import (
	"testing"
	"time"

	"slotwise/models"
)

func slotAt(t *testing.T, start, end string) models.AvailabilitySlot {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("bad start %s: %v", start, err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		t.Fatalf("bad end %s: %v", end, err)
	}
	return models.AvailabilitySlot{Start: s, End: e}
}

func threeMorningSlots(t *testing.T) []models.AvailabilitySlot {
	return []models.AvailabilitySlot{
		slotAt(t, "2024-01-01T09:00:00Z", "2024-01-01T09:30:00Z"),
		slotAt(t, "2024-01-01T09:30:00Z", "2024-01-01T10:00:00Z"),
		slotAt(t, "2024-01-01T10:00:00Z", "2024-01-01T10:30:00Z"),
	}
}

func TestFilterSlotsByBookings_RemovesCollisions(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:      "bk1",
			StartAt: time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
			EndAt:   time.Date(2024, 1, 1, 9, 45, 0, 0, time.UTC),
			Status:  models.BookingConfirmed,
		},
	}
	now := time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)

	available := FilterSlotsByBookings(threeMorningSlots(t), bookings, now)

	if len(available) != 1 {
		t.Fatalf("expected 1 surviving slot, got %d", len(available))
	}
	if got := available[0].Start.Format("15:04"); got != "10:00" {
		t.Fatalf("surviving slot starts %s, want 10:00", got)
	}
}

func TestFilterSlotsByBookings_CancelledNeverBlocks(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:      "bk1",
			StartAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
			Status:  models.BookingCancelled,
		},
		{
			ID:      "bk2",
			StartAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
			Status:  models.BookingCompleted,
		},
	}
	now := time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)

	available := FilterSlotsByBookings(threeMorningSlots(t), bookings, now)

	if len(available) != 3 {
		t.Fatalf("expected all 3 slots to survive, got %d", len(available))
	}
}

func TestFilterSlotsByBookings_DropsSlotsEndedByNow(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 45, 0, 0, time.UTC)

	available := FilterSlotsByBookings(threeMorningSlots(t), nil, now)

	// 09:00-09:30 is fully past; 09:30-10:00 straddles now and stays.
	if len(available) != 2 {
		t.Fatalf("expected 2 surviving slots, got %d", len(available))
	}
	if got := available[0].Start.Format("15:04"); got != "09:30" {
		t.Fatalf("first surviving slot starts %s, want 09:30", got)
	}
}

func TestFilterSlotsByBookings_ExactEndEqualNowDropped(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	available := FilterSlotsByBookings(threeMorningSlots(t), nil, now)

	if len(available) != 2 {
		t.Fatalf("slot ending exactly at now must be dropped; got %d survivors", len(available))
	}
}

func TestFilterSlotsByBookings_PreservesOrder(t *testing.T) {
	now := time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)

	available := FilterSlotsByBookings(threeMorningSlots(t), nil, now)

	for i := 1; i < len(available); i++ {
		if available[i].Start.Before(available[i-1].Start) {
			t.Fatalf("input order not preserved at index %d", i)
		}
	}
}

func TestFilterSlotsByBookings_PendingBlocksToo(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:      "bk1",
			StartAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
			Status:  models.BookingPending,
		},
	}
	now := time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)

	available := FilterSlotsByBookings(threeMorningSlots(t), bookings, now)

	if len(available) != 2 {
		t.Fatalf("expected pending booking to block its slot, got %d survivors", len(available))
	}
	for _, slot := range available {
		if slot.Start.Equal(bookings[0].StartAt) {
			t.Fatalf("blocked slot survived the filter")
		}
	}
}
