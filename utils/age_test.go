package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		birth time.Time
		now   time.Time
		want  int
	}{
		{"same day", date(2025, 6, 15), date(2025, 6, 15), 0},
		{"one month exactly", date(2025, 5, 15), date(2025, 6, 15), 1},
		{"day not reached yet", date(2025, 5, 20), date(2025, 6, 15), 0},
		{"across year boundary", date(2024, 11, 10), date(2025, 2, 10), 3},
		{"full year", date(2024, 6, 15), date(2025, 6, 15), 12},
		{"future birth date clamps to zero", date(2025, 7, 1), date(2025, 6, 15), 0},
		{"late january to early march", date(2025, 1, 31), date(2025, 3, 1), 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MonthsBetween(tt.birth, tt.now); got != tt.want {
				t.Fatalf("MonthsBetween(%v, %v) = %d, want %d", tt.birth, tt.now, got, tt.want)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	t.Parallel()

	now := date(2025, 6, 15)
	if got := DaysSince(now.AddDate(0, 0, -7), now); got != 7 {
		t.Fatalf("DaysSince() = %d, want 7", got)
	}
	if got := DaysSince(now.Add(-36*time.Hour), now); got != 1 {
		t.Fatalf("DaysSince() truncates partial days, got %d, want 1", got)
	}
}
