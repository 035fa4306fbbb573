package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lareinaLY/baby-meal-recommendation/config"
	"github.com/lareinaLY/baby-meal-recommendation/models"
)

// FeedbackInput is the caller-supplied feedback payload.
type FeedbackInput struct {
	BabyID          uint    `json:"baby_id" binding:"required"`
	RecipeID        uint    `json:"recipe_id" binding:"required"`
	Rating          float64 `json:"rating" binding:"required,gte=1,lte=5"`
	Accepted        bool    `json:"accepted"`
	Prepared        bool    `json:"prepared"`
	BabyLiked       *bool   `json:"baby_liked"`
	Comments        string  `json:"comments" binding:"max=500"`
	RejectionReason string  `json:"rejection_reason" binding:"max=200"`
}

// FeedbackUpdate carries the revisable fields; nil means unchanged.
type FeedbackUpdate struct {
	Rating          *float64 `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Accepted        *bool    `json:"accepted"`
	Prepared        *bool    `json:"prepared"`
	BabyLiked       *bool    `json:"baby_liked"`
	Comments        *string  `json:"comments" binding:"omitempty,max=500"`
	RejectionReason *string  `json:"rejection_reason" binding:"omitempty,max=200"`
}

// SubmitFeedback stores a new feedback event and, for rejections,
// bumps the attempt history of every disliked ingredient the recipe
// contains. Updates never re-increment; only creation does.
func SubmitFeedback(input FeedbackInput) (*models.Feedback, error) {
	var baby models.Baby
	if err := config.DB.First(&baby, input.BabyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBabyNotFound
		}
		return nil, err
	}

	var recipe models.Recipe
	if err := config.DB.First(&recipe, input.RecipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	now := time.Now()
	fb := models.Feedback{
		BabyID:          input.BabyID,
		RecipeID:        input.RecipeID,
		Rating:          input.Rating,
		Accepted:        input.Accepted,
		Prepared:        input.Prepared,
		BabyLiked:       input.BabyLiked,
		Comments:        input.Comments,
		RejectionReason: input.RejectionReason,
		RecommendedAt:   now,
		FeedbackAt:      now,
	}
	if err := config.DB.Create(&fb).Error; err != nil {
		return nil, err
	}

	if rejection(&fb) {
		recordIngredientAttempts(&baby, &recipe, now)
	}

	return &fb, nil
}

// UpdateFeedback applies a partial revision, e.g. a parent who first
// rejected a recipe and later prepared it.
func UpdateFeedback(id uint, update FeedbackUpdate) (*models.Feedback, error) {
	var fb models.Feedback
	if err := config.DB.First(&fb, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}

	if update.Rating != nil {
		fb.Rating = *update.Rating
	}
	if update.Accepted != nil {
		fb.Accepted = *update.Accepted
	}
	if update.Prepared != nil {
		fb.Prepared = *update.Prepared
	}
	if update.BabyLiked != nil {
		fb.BabyLiked = update.BabyLiked
	}
	if update.Comments != nil {
		fb.Comments = *update.Comments
	}
	if update.RejectionReason != nil {
		fb.RejectionReason = *update.RejectionReason
	}
	fb.FeedbackAt = time.Now()

	if err := config.DB.Save(&fb).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

func FeedbackByID(id uint) (*models.Feedback, error) {
	var fb models.Feedback
	if err := config.DB.First(&fb, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &fb, nil
}

func ListFeedbackForBaby(babyID uint, skip, limit int) ([]models.Feedback, error) {
	var exists int64
	if err := config.DB.Model(&models.Baby{}).Where("id = ?", babyID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrBabyNotFound
	}

	var feedbacks []models.Feedback
	err := config.DB.
		Where("baby_id = ?", babyID).
		Offset(skip).Limit(limit).
		Find(&feedbacks).Error
	return feedbacks, err
}

func DeleteFeedback(id uint) error {
	result := config.DB.Delete(&models.Feedback{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

func rejection(fb *models.Feedback) bool {
	if !fb.Accepted {
		return true
	}
	return fb.BabyLiked != nil && !*fb.BabyLiked
}

// recordIngredientAttempts bumps the attempt record of each disliked
// ingredient present in the rejected recipe. This is the write path
// the retry scheduler reads from.
func recordIngredientAttempts(baby *models.Baby, recipe *models.Recipe, when time.Time) {
	touched := false
	for _, disliked := range baby.DislikedIngredients {
		needle := strings.ToLower(disliked)
		for _, ing := range recipe.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), needle) {
				baby.RecordAttempt(disliked, when)
				touched = true
				break
			}
		}
	}
	if touched {
		config.DB.Save(baby)
	}
}
