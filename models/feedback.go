package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback links one baby to one recipe and records how a
// recommendation played out. Created when a parent accepts or rejects
// a recommendation, updated if they later revise it, never deleted
// automatically.
type Feedback struct {
	gorm.Model
	BabyID   uint `gorm:"index;not null" json:"baby_id"`
	RecipeID uint `gorm:"index;not null" json:"recipe_id"`

	Rating    float64 `gorm:"not null" json:"rating"` // 1-5 stars
	Accepted  bool    `gorm:"not null" json:"accepted"`
	Prepared  bool    `gorm:"default:false" json:"prepared"`
	BabyLiked *bool   `json:"baby_liked,omitempty"` // nil = unknown

	Comments        string `json:"comments,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	RecommendedAt time.Time `json:"recommended_at"`
	FeedbackAt    time.Time `json:"feedback_at"`
}

// Score collapses the feedback into a 0-1 outcome signal:
// rejected 0, accepted-not-prepared 0.3, prepared-but-disliked 0.4,
// otherwise rating/5.
func (f *Feedback) Score() float64 {
	if !f.Accepted {
		return 0.0
	}
	if !f.Prepared {
		return 0.3
	}
	if f.BabyLiked != nil && !*f.BabyLiked {
		return 0.4
	}
	return f.Rating / 5.0
}
