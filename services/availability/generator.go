package availability

import (
	"time"

	"slotwise/models"
)

// DefaultLookaheadDays bounds how far ahead slots are generated when
// the caller does not ask for a specific horizon.
const DefaultLookaheadDays = 14

const dayFormat = "2006-01-02"

// GenerateBookableSlots expands a provider's recurring weekly rules
// into concrete dated slots of serviceDurationMin minutes, starting at
// from's calendar date (inclusive) for lookaheadDays days. Blackout
// days are skipped whole. Slots that would start before from are
// skipped, not truncated, and no partial trailing slot is emitted.
//
// Overlapping rules on the same day each produce their own slot run;
// the output is intentionally not deduplicated. Emission order is
// day-ascending, then rule order, then time-ascending.
func GenerateBookableSlots(
	rules []models.AvailabilityRule,
	blackoutDates []models.BlackoutDate,
	serviceDurationMin int,
	from time.Time,
	lookaheadDays int,
) []models.AvailabilitySlot {
	if serviceDurationMin <= 0 {
		return nil
	}
	if from.IsZero() {
		from = time.Now().UTC()
	}
	if lookaheadDays <= 0 {
		lookaheadDays = DefaultLookaheadDays
	}
	duration := time.Duration(serviceDurationMin) * time.Minute

	blackouts := make(map[string]struct{}, len(blackoutDates))
	for _, b := range blackoutDates {
		blackouts[b.Day] = struct{}{}
	}

	var slots []models.AvailabilitySlot
	dayZero := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	for offset := 0; offset < lookaheadDays; offset++ {
		day := dayZero.AddDate(0, 0, offset)
		if _, blocked := blackouts[day.Format(dayFormat)]; blocked {
			continue
		}
		dow := int(day.Weekday())

		for _, rule := range rules {
			if rule.DayOfWeek != dow {
				continue
			}
			windowStart, okStart := clockOnDay(day, rule.StartTime)
			windowEnd, okEnd := clockOnDay(day, rule.EndTime)
			if !okStart || !okEnd || !windowStart.Before(windowEnd) {
				continue
			}

			for cursor := windowStart; !cursor.Add(duration).After(windowEnd); cursor = cursor.Add(duration) {
				if cursor.Before(from) {
					continue
				}
				slots = append(slots, models.AvailabilitySlot{Start: cursor, End: cursor.Add(duration)})
			}
		}
	}

	return slots
}

// clockOnDay anchors an "HH:MM" or "HH:MM:SS" wall-clock value onto the
// given day, in that day's location.
func clockOnDay(day time.Time, clock string) (time.Time, bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, day.Location()), true
	}
	return time.Time{}, false
}
