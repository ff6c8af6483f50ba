package availability

import (
	"testing"
	"time"

	"slotwise/models"
)

// Monday 2024-01-01; the Tuesday rule below lands on 2024-01-02.
var tueRule = models.AvailabilityRule{
	ID: "r1", ProviderID: "p1", DayOfWeek: 2, StartTime: "09:00", EndTime: "11:00",
}

func TestGenerateBookableSlots_TuesdayWindow(t *testing.T) {
	from := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	slots := GenerateBookableSlots([]models.AvailabilityRule{tueRule}, nil, 30, from, 2)

	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	wantStarts := []string{"09:00", "09:30", "10:00", "10:30"}
	for i, slot := range slots {
		if got := slot.Start.Format("2006-01-02"); got != "2024-01-02" {
			t.Fatalf("slot %d on wrong day: %s", i, got)
		}
		if got := slot.Start.Format("15:04"); got != wantStarts[i] {
			t.Fatalf("slot %d start = %s, want %s", i, got, wantStarts[i])
		}
		if slot.End.Sub(slot.Start) != 30*time.Minute {
			t.Fatalf("slot %d duration = %s", i, slot.End.Sub(slot.Start))
		}
	}
}

func TestGenerateBookableSlots_BlackoutRemovesWholeDay(t *testing.T) {
	from := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	blackouts := []models.BlackoutDate{
		{ID: "b1", ProviderID: "p1", Day: "2024-01-02", Reason: "Holiday"},
	}

	slots := GenerateBookableSlots([]models.AvailabilityRule{tueRule}, blackouts, 30, from, 2)

	if len(slots) != 0 {
		t.Fatalf("expected no slots on blacked-out day, got %d", len(slots))
	}
}

func TestGenerateBookableSlots_SkipsStartsBeforeFrom(t *testing.T) {
	// from lands mid-window on the rule's own day.
	from := time.Date(2024, 1, 2, 9, 45, 0, 0, time.UTC)

	slots := GenerateBookableSlots([]models.AvailabilityRule{tueRule}, nil, 30, from, 1)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.Start.Before(from) {
			t.Fatalf("slot starts before from: %s", slot.Start)
		}
	}
	if got := slots[0].Start.Format("15:04"); got != "10:00" {
		t.Fatalf("first surviving slot = %s, want 10:00", got)
	}
}

func TestGenerateBookableSlots_NoPartialTrailingSlot(t *testing.T) {
	rule := models.AvailabilityRule{ID: "r1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:15"}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	slots := GenerateBookableSlots([]models.AvailabilityRule{rule}, nil, 30, from, 2)

	// 09:00-09:30 and 09:30-10:00 fit; 10:00-10:30 would spill past 10:15.
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	last := slots[len(slots)-1]
	if got := last.End.Format("15:04"); got != "10:00" {
		t.Fatalf("last slot ends %s, want 10:00", got)
	}
}

func TestGenerateBookableSlots_OverlappingRulesNotDeduped(t *testing.T) {
	rules := []models.AvailabilityRule{
		{ID: "r1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00"},
		{ID: "r2", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00"},
	}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	slots := GenerateBookableSlots(rules, nil, 30, from, 2)

	// Two identical rules produce two identical slot runs; that is the
	// documented contract, providers are expected to keep rules disjoint.
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots from duplicate rules, got %d", len(slots))
	}
}

func TestGenerateBookableSlots_Deterministic(t *testing.T) {
	rules := []models.AvailabilityRule{
		tueRule,
		{ID: "r2", ProviderID: "p1", DayOfWeek: 3, StartTime: "14:00", EndTime: "16:00"},
	}
	from := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	first := GenerateBookableSlots(rules, nil, 45, from, 7)
	second := GenerateBookableSlots(rules, nil, 45, from, 7)

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || !first[i].End.Equal(second[i].End) {
			t.Fatalf("runs differ at index %d: %v vs %v", i, first[i], second[i])
		}
	}
	// Day-ascending, then time-ascending within a day.
	for i := 1; i < len(first); i++ {
		if first[i].Start.Before(first[i-1].Start) {
			t.Fatalf("slots out of order at index %d", i)
		}
	}
}

func TestGenerateBookableSlots_InvalidInputs(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := GenerateBookableSlots([]models.AvailabilityRule{tueRule}, nil, 0, from, 2); got != nil {
		t.Fatalf("expected nil for zero duration, got %d slots", len(got))
	}

	bad := models.AvailabilityRule{ID: "r1", DayOfWeek: 2, StartTime: "junk", EndTime: "11:00"}
	if got := GenerateBookableSlots([]models.AvailabilityRule{bad}, nil, 30, from, 2); len(got) != 0 {
		t.Fatalf("expected unparseable rule to be ignored, got %d slots", len(got))
	}

	inverted := models.AvailabilityRule{ID: "r1", DayOfWeek: 2, StartTime: "11:00", EndTime: "09:00"}
	if got := GenerateBookableSlots([]models.AvailabilityRule{inverted}, nil, 30, from, 2); len(got) != 0 {
		t.Fatalf("expected inverted window to produce nothing, got %d slots", len(got))
	}
}
