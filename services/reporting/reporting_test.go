package reporting

import (
	"math"
	"testing"
)

func TestCalculateConversionRateZeroCases(t *testing.T) {
	if got := CalculateConversionRate(0, 0); got != 0 {
		t.Fatalf("no bookings should yield 0, got %v", got)
	}
	if got := CalculateConversionRate(0, 5); got != 0 {
		t.Fatalf("no confirmations should yield 0, got %v", got)
	}
	if got := CalculateConversionRate(-1, 5); got != 0 {
		t.Fatalf("negative confirmed should yield 0, got %v", got)
	}
	if got := CalculateConversionRate(3, 0); got != 0 {
		t.Fatalf("zero total should yield 0, got %v", got)
	}
}

func TestCalculateConversionRateWholeNumber(t *testing.T) {
	if got := CalculateConversionRate(5, 10); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := CalculateConversionRate(10, 10); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestCalculateConversionRateRoundsToOneDecimal(t *testing.T) {
	cases := []struct {
		confirmed, total int64
		want             float64
	}{
		{3, 7, 42.9},
		{2, 3, 66.7},
		{1, 8, 12.5},
		{1, 3, 33.3},
	}
	for _, tc := range cases {
		got := CalculateConversionRate(tc.confirmed, tc.total)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("CalculateConversionRate(%d, %d) = %v, want %v", tc.confirmed, tc.total, got, tc.want)
		}
	}
}
