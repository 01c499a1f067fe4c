package utils

import (
	"testing"
	"time"
)

func TestAddMonthClampedEndOfMonth(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-01-31", "2025-02-28"}, // Feb too short, clamp
		{"2024-01-31", "2024-02-29"}, // leap year
		{"2025-03-31", "2025-04-30"},
		{"2025-01-15", "2025-02-15"}, // plain day preserved
		{"2025-12-31", "2026-01-31"}, // year rollover
		{"2025-10-31", "2025-11-30"},
	}
	for _, tc := range cases {
		in, err := ParseDate(tc.in)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.in, err)
		}
		got := FormatDate(AddMonthClamped(in))
		if got != tc.want {
			t.Fatalf("AddMonthClamped(%s)=%s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	d := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)
	if got := PeriodLabel(d); got != "Apr 2025" {
		t.Fatalf("PeriodLabel=%q, want %q", got, "Apr 2025")
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("31-01-2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
}
