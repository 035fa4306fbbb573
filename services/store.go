package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lareinaLY/baby-meal-recommendation/models"
)

// RecipeStore is the read side of the recipe collection the
// recommendation logic runs against.
type RecipeStore interface {
	// FindEligible returns recipes whose age window covers ageMonths.
	// mealType narrows to an exact meal-type match when non-empty.
	FindEligible(ageMonths int, mealType string) ([]models.Recipe, error)
	// ByID returns nil (no error) when the recipe does not exist.
	ByID(id uint) (*models.Recipe, error)
}

// FeedbackStore answers historical questions about past
// recommendations.
type FeedbackStore interface {
	// ForBabyRecipe returns the baby's feedback for a recipe, nil when
	// none exists.
	ForBabyRecipe(babyID, recipeID uint) (*models.Feedback, error)
	// RecentRecipeIDs returns ids of recipes recommended to the baby on
	// or after since.
	RecentRecipeIDs(babyID uint, since time.Time) (map[uint]struct{}, error)
	// AcceptedRatingsForRecipe returns all ratings from accepted
	// feedback on a recipe, across babies.
	AcceptedRatingsForRecipe(recipeID uint) ([]float64, error)
}

type GormRecipeStore struct {
	db *gorm.DB
}

func NewGormRecipeStore(db *gorm.DB) *GormRecipeStore {
	return &GormRecipeStore{db: db}
}

func (s *GormRecipeStore) FindEligible(ageMonths int, mealType string) ([]models.Recipe, error) {
	q := s.db.
		Where("age_min_months <= ?", ageMonths).
		Where("age_max_months IS NULL OR age_max_months >= ?", ageMonths)
	if mealType != "" {
		q = q.Where("meal_type = ?", mealType)
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *GormRecipeStore) ByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

type GormFeedbackStore struct {
	db *gorm.DB
}

func NewGormFeedbackStore(db *gorm.DB) *GormFeedbackStore {
	return &GormFeedbackStore{db: db}
}

func (s *GormFeedbackStore) ForBabyRecipe(babyID, recipeID uint) (*models.Feedback, error) {
	var fb models.Feedback
	err := s.db.
		Where("baby_id = ? AND recipe_id = ?", babyID, recipeID).
		First(&fb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (s *GormFeedbackStore) RecentRecipeIDs(babyID uint, since time.Time) (map[uint]struct{}, error) {
	var ids []uint
	err := s.db.Model(&models.Feedback{}).
		Where("baby_id = ? AND recommended_at >= ?", babyID, since).
		Distinct().
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *GormFeedbackStore) AcceptedRatingsForRecipe(recipeID uint) ([]float64, error) {
	var ratings []float64
	err := s.db.Model(&models.Feedback{}).
		Where("recipe_id = ? AND accepted = ?", recipeID, true).
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
