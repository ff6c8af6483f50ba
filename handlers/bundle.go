package handlers

import (
	availabilityRepo "slotwise/database/repository/availability"
	bookingRepo "slotwise/database/repository/booking"
	notificationRepo "slotwise/database/repository/notification"
	providerRepo "slotwise/database/repository/provider"
	"slotwise/services/booking"
	"slotwise/services/reporting"
)

// HandlerBundle carries the wired services the HTTP layer depends on.
type HandlerBundle struct {
	Bookings         booking.Service
	Reports          reporting.Service
	ProviderRepo     providerRepo.ProviderRepository
	AvailabilityRepo availabilityRepo.AvailabilityRepository
	BookingRepo      bookingRepo.BookingRepository
	NotificationRepo notificationRepo.NotificationRepository

	// MaxTopupCredits caps a single top-up request.
	MaxTopupCredits int
}
