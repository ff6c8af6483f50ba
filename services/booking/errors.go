package booking

import "errors"

var (
	// ErrSlotUnavailable signals that the requested start time is not in
	// the provider's current bookable availability.
	ErrSlotUnavailable = errors.New("requested slot is not available")

	// ErrUnsupportedStatus signals a transition the booking's current
	// status does not allow, e.g. cancelling a completed booking.
	ErrUnsupportedStatus = errors.New("booking status does not allow this operation")

	// ErrInactiveService signals a booking attempt against a deactivated
	// service or one belonging to another provider.
	ErrInactiveService = errors.New("service is not active for this provider")

	// ErrBadWebhookSignature signals a webhook whose signature the
	// gateway rejected.
	ErrBadWebhookSignature = errors.New("webhook signature verification failed")
)
