package availability

import (
	"time"

	"slotwise/models"
)

// FilterSlotsByBookings removes slots that collide with pending or
// confirmed bookings, plus slots that already ended at now. Cancelled
// and completed bookings never block a slot. The relative order of
// surviving slots is preserved.
func FilterSlotsByBookings(
	slots []models.AvailabilitySlot,
	bookings []models.Booking,
	now time.Time,
) []models.AvailabilitySlot {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	available := make([]models.AvailabilitySlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.End.After(now) {
			continue
		}
		if overlapsBlockingBooking(slot, bookings) {
			continue
		}
		available = append(available, slot)
	}
	return available
}

func overlapsBlockingBooking(slot models.AvailabilitySlot, bookings []models.Booking) bool {
	for _, b := range bookings {
		if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
			continue
		}
		if slot.Start.Before(b.EndAt) && b.StartAt.Before(slot.End) {
			return true
		}
	}
	return false
}
