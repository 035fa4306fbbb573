package models

import (
	"math"
	"testing"
)

func TestNutritionScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		recipe Recipe
		want   float64
	}{
		{
			name:   "empty recipe scores the base",
			recipe: Recipe{},
			want:   50,
		},
		{
			name:   "protein capped at twenty points",
			recipe: Recipe{ProteinG: 30},
			want:   70,
		},
		{
			name:   "fiber capped at ten points",
			recipe: Recipe{FiberG: 10},
			want:   60,
		},
		{
			name: "micronutrients use divisors",
			// iron 3 + calcium 120/20=5(cap) + vitamin A 100/50=2
			recipe: Recipe{IronMg: 3, CalciumMg: 120, VitaminAMcg: 100},
			want:   60,
		},
		{
			name:   "sugar deducts point per gram",
			recipe: Recipe{SugarG: 12},
			want:   38,
		},
		{
			name:   "sugar deduction capped at twenty",
			recipe: Recipe{SugarG: 40},
			want:   30,
		},
		{
			name: "all bonuses capped",
			// 50 + 20 + 10 + 5 + 5 + 5
			recipe: Recipe{
				ProteinG:    50,
				FiberG:      50,
				IronMg:      50,
				CalciumMg:   1000,
				VitaminAMcg: 1000,
			},
			want: 95,
		},
		{
			name: "mixed recipe",
			// 50 + 8 + 6 + 1.5 + 2.5 + 1 - 5 = 64
			recipe: Recipe{
				ProteinG:    4,
				FiberG:      2,
				IronMg:      1.5,
				CalciumMg:   50,
				VitaminAMcg: 50,
				SugarG:      5,
			},
			want: 64,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.recipe.NutritionScore()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("NutritionScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNutritionScoreBounds(t *testing.T) {
	t.Parallel()

	recipes := []Recipe{
		{},
		{SugarG: 100},
		{ProteinG: 100, FiberG: 100, IronMg: 100, CalciumMg: 10000, VitaminAMcg: 10000},
	}
	for _, r := range recipes {
		score := r.NutritionScore()
		if score < 0 || score > 100 {
			t.Fatalf("NutritionScore() = %f, out of [0,100]", score)
		}
	}
}
