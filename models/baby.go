package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/lareinaLY/baby-meal-recommendation/utils"
)

// IngredientAttempt tracks how often a disliked ingredient has been
// offered and when it was last tried.
type IngredientAttempt struct {
	Attempts int       `json:"attempts"`
	LastTry  time.Time `json:"last_try"`
}

type Baby struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`
	WeightKg  float64   `json:"weight_kg,omitempty"`
	HeightCm  float64   `json:"height_cm,omitempty"`

	Allergies           []string                     `gorm:"serializer:json" json:"allergies"`
	LikedIngredients    []string                     `gorm:"serializer:json" json:"liked_ingredients"`
	DislikedIngredients []string                     `gorm:"serializer:json" json:"disliked_ingredients"`
	TriedIngredients    map[string]IngredientAttempt `gorm:"serializer:json" json:"tried_ingredients"`

	Feedbacks []Feedback `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// AgeMonths derives the baby's age in whole months at the given time.
// Age is never stored; it is recomputed on each access from BirthDate.
func (b *Baby) AgeMonths(now time.Time) int {
	return utils.MonthsBetween(b.BirthDate, now)
}

// AgeStage buckets age into a developmental feeding stage.
func (b *Baby) AgeStage(now time.Time) string {
	months := b.AgeMonths(now)
	switch {
	case months < 6:
		return "early_infancy"
	case months < 12:
		return "late_infancy"
	case months < 24:
		return "toddler"
	default:
		return "preschooler"
	}
}

// AttemptsFor returns the recorded attempt count for an ingredient,
// zero when it was never tracked.
func (b *Baby) AttemptsFor(ingredient string) int {
	if b.TriedIngredients == nil {
		return 0
	}
	return b.TriedIngredients[ingredient].Attempts
}

// AttemptHistory returns the attempt record and whether one exists.
func (b *Baby) AttemptHistory(ingredient string) (IngredientAttempt, bool) {
	if b.TriedIngredients == nil {
		return IngredientAttempt{}, false
	}
	att, ok := b.TriedIngredients[ingredient]
	return att, ok
}

// RecordAttempt bumps the attempt counter for an ingredient and stamps
// the last-try date. Callers persist the baby afterwards.
func (b *Baby) RecordAttempt(ingredient string, when time.Time) {
	if b.TriedIngredients == nil {
		b.TriedIngredients = map[string]IngredientAttempt{}
	}
	att := b.TriedIngredients[ingredient]
	att.Attempts++
	att.LastTry = when
	b.TriedIngredients[ingredient] = att
}
