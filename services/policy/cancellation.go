package policy

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidStartAt is returned when the booking start time cannot be
// parsed as an RFC 3339 instant.
var ErrInvalidStartAt = errors.New("invalid booking start time")

// CancellationResult is the outcome of evaluating a provider's late
// cancellation cutoff against one booking. Derived value, not persisted.
type CancellationResult struct {
	IsLate            bool `json:"isLate"`
	RefundEligible    bool `json:"refundEligible"`
	MinutesUntilStart int  `json:"minutesUntilStart"`
}

// EvaluateCancellationPolicy decides whether cancelling a booking that
// starts at bookingStartAt counts as late given the provider's cutoff
// in hours. A cutoff of zero makes every cancellation before the start
// time refund-eligible. MinutesUntilStart is negative for bookings
// already started.
func EvaluateCancellationPolicy(bookingStartAt string, lateCancelHours int, now time.Time) (CancellationResult, error) {
	startAt, err := time.Parse(time.RFC3339, bookingStartAt)
	if err != nil {
		return CancellationResult{}, ErrInvalidStartAt
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	minutesUntilStart := int(math.Round(startAt.Sub(now).Minutes()))

	cutoffHours := lateCancelHours
	if cutoffHours < 0 {
		cutoffHours = 0
	}
	cutoffMinutes := cutoffHours * 60

	refundEligible := minutesUntilStart >= cutoffMinutes
	return CancellationResult{
		IsLate:            !refundEligible,
		RefundEligible:    refundEligible,
		MinutesUntilStart: minutesUntilStart,
	}, nil
}
