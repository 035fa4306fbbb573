package models

import (
	"testing"
	"time"
)

var babyNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestBabyAgeStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		birth      time.Time
		wantMonths int
		wantStage  string
	}{
		{
			name:       "newborn",
			birth:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			wantMonths: 1,
			wantStage:  "early_infancy",
		},
		{
			name:       "six months is late infancy",
			birth:      time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
			wantMonths: 6,
			wantStage:  "late_infancy",
		},
		{
			name:       "first birthday is toddler",
			birth:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			wantMonths: 12,
			wantStage:  "toddler",
		},
		{
			name:       "two years is preschooler",
			birth:      time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
			wantMonths: 24,
			wantStage:  "preschooler",
		},
		{
			name: "day of month not yet reached",
			// 2024-12-20 to 2025-06-15 is five full months.
			birth:      time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
			wantMonths: 5,
			wantStage:  "early_infancy",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			baby := Baby{BirthDate: tt.birth}
			if got := baby.AgeMonths(babyNow); got != tt.wantMonths {
				t.Fatalf("AgeMonths() = %d, want %d", got, tt.wantMonths)
			}
			if got := baby.AgeStage(babyNow); got != tt.wantStage {
				t.Fatalf("AgeStage() = %q, want %q", got, tt.wantStage)
			}
		})
	}
}

func TestBabyRecordAttempt(t *testing.T) {
	t.Parallel()

	baby := Baby{}
	if got := baby.AttemptsFor("broccoli"); got != 0 {
		t.Fatalf("AttemptsFor() on fresh baby = %d, want 0", got)
	}
	if _, ok := baby.AttemptHistory("broccoli"); ok {
		t.Fatalf("AttemptHistory() reported record before any attempt")
	}

	first := babyNow.AddDate(0, 0, -10)
	baby.RecordAttempt("broccoli", first)
	baby.RecordAttempt("broccoli", babyNow)

	if got := baby.AttemptsFor("broccoli"); got != 2 {
		t.Fatalf("AttemptsFor() = %d, want 2", got)
	}
	att, ok := baby.AttemptHistory("broccoli")
	if !ok {
		t.Fatalf("AttemptHistory() missing after RecordAttempt")
	}
	if !att.LastTry.Equal(babyNow) {
		t.Fatalf("LastTry = %v, want %v", att.LastTry, babyNow)
	}

	// Other ingredients stay untouched.
	if got := baby.AttemptsFor("carrot"); got != 0 {
		t.Fatalf("AttemptsFor(carrot) = %d, want 0", got)
	}
}
