package models

import (
	"math"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestFeedbackScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		feedback Feedback
		want     float64
	}{
		{
			name:     "rejected scores zero",
			feedback: Feedback{Accepted: false, Rating: 5},
			want:     0,
		},
		{
			name:     "accepted but never prepared",
			feedback: Feedback{Accepted: true, Prepared: false, Rating: 5},
			want:     0.3,
		},
		{
			name:     "prepared but baby disliked",
			feedback: Feedback{Accepted: true, Prepared: true, BabyLiked: boolPtr(false), Rating: 5},
			want:     0.4,
		},
		{
			name:     "liked uses the rating",
			feedback: Feedback{Accepted: true, Prepared: true, BabyLiked: boolPtr(true), Rating: 4},
			want:     0.8,
		},
		{
			name:     "unknown liking still uses the rating",
			feedback: Feedback{Accepted: true, Prepared: true, Rating: 3},
			want:     0.6,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.feedback.Score()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Score() = %f, want %f", got, tt.want)
			}
		})
	}
}
