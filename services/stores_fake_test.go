package services_test

import (
	"time"

	"github.com/lareinaLY/baby-meal-recommendation/models"
)

// fakeRecipeStore serves a fixed slice in insertion order.
type fakeRecipeStore struct {
	recipes []models.Recipe
}

func (s *fakeRecipeStore) FindEligible(ageMonths int, mealType string) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, r := range s.recipes {
		if !r.SuitableForAge(ageMonths) {
			continue
		}
		if mealType != "" && r.MealType != mealType {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeRecipeStore) ByID(id uint) (*models.Recipe, error) {
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return &s.recipes[i], nil
		}
	}
	return nil, nil
}

// fakeFeedbackStore holds feedback rows in memory.
type fakeFeedbackStore struct {
	feedbacks []models.Feedback
}

func (s *fakeFeedbackStore) ForBabyRecipe(babyID, recipeID uint) (*models.Feedback, error) {
	for i := range s.feedbacks {
		if s.feedbacks[i].BabyID == babyID && s.feedbacks[i].RecipeID == recipeID {
			return &s.feedbacks[i], nil
		}
	}
	return nil, nil
}

func (s *fakeFeedbackStore) RecentRecipeIDs(babyID uint, since time.Time) (map[uint]struct{}, error) {
	out := map[uint]struct{}{}
	for _, fb := range s.feedbacks {
		if fb.BabyID == babyID && !fb.RecommendedAt.Before(since) {
			out[fb.RecipeID] = struct{}{}
		}
	}
	return out, nil
}

func (s *fakeFeedbackStore) AcceptedRatingsForRecipe(recipeID uint) ([]float64, error) {
	var ratings []float64
	for _, fb := range s.feedbacks {
		if fb.RecipeID == recipeID && fb.Accepted {
			ratings = append(ratings, fb.Rating)
		}
	}
	return ratings, nil
}
