package policy

import (
	"errors"
	"testing"
	"time"
)

func TestEvaluateCancellationPolicy_BeforeCutoff(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	startAt := now.Add(20 * time.Hour).Format(time.RFC3339)

	result, err := EvaluateCancellationPolicy(startAt, 12, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.RefundEligible || result.IsLate {
		t.Fatalf("expected refund-eligible, got %+v", result)
	}
	if result.MinutesUntilStart != 20*60 {
		t.Fatalf("minutesUntilStart = %d, want %d", result.MinutesUntilStart, 20*60)
	}
}

func TestEvaluateCancellationPolicy_InsideCutoff(t *testing.T) {
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	startAt := now.Add(8 * time.Hour).Format(time.RFC3339)

	result, err := EvaluateCancellationPolicy(startAt, 12, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RefundEligible || !result.IsLate {
		t.Fatalf("expected late cancellation, got %+v", result)
	}
}

func TestEvaluateCancellationPolicy_ZeroCutoff(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	// One minute out is still refund-eligible with no cutoff.
	result, err := EvaluateCancellationPolicy(now.Add(time.Minute).Format(time.RFC3339), 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.RefundEligible {
		t.Fatalf("expected refund-eligible with zero cutoff, got %+v", result)
	}

	// A booking already started is not.
	result, err = EvaluateCancellationPolicy(now.Add(-time.Hour).Format(time.RFC3339), 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RefundEligible {
		t.Fatalf("expected past booking to be late, got %+v", result)
	}
	if result.MinutesUntilStart != -60 {
		t.Fatalf("minutesUntilStart = %d, want -60", result.MinutesUntilStart)
	}
}

func TestEvaluateCancellationPolicy_NegativeCutoffClamped(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	result, err := EvaluateCancellationPolicy(now.Add(time.Minute).Format(time.RFC3339), -5, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.RefundEligible {
		t.Fatalf("negative cutoff should behave like zero, got %+v", result)
	}
}

func TestEvaluateCancellationPolicy_InvalidStartAt(t *testing.T) {
	_, err := EvaluateCancellationPolicy("not-a-timestamp", 12, time.Now())
	if !errors.Is(err, ErrInvalidStartAt) {
		t.Fatalf("expected ErrInvalidStartAt, got %v", err)
	}
}
