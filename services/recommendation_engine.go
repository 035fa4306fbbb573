package services

import (
	"sort"
	"strings"
	"time"

	"github.com/lareinaLY/baby-meal-recommendation/models"
)

// EngineWeights holds the blend of the three scoring components. The
// defaults are deliberate literals carried over from tuning, not a
// derived formula.
type EngineWeights struct {
	Nutrition  float64
	Preference float64
	Historical float64
}

func DefaultEngineWeights() EngineWeights {
	return EngineWeights{Nutrition: 0.3, Preference: 0.3, Historical: 0.4}
}

// Recommendation is one ranked engine result.
type Recommendation struct {
	Recipe models.Recipe `json:"recipe"`
	Score  float64       `json:"score"`
	Reason string        `json:"reason"`
}

// RecommendationEngine ranks recipes for a baby by blending nutrition
// quality, ingredient preferences and past feedback. It only reads;
// every call is independent and safe to run concurrently.
type RecommendationEngine struct {
	recipes  RecipeStore
	feedback FeedbackStore
	weights  EngineWeights

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewRecommendationEngine(recipes RecipeStore, feedback FeedbackStore) *RecommendationEngine {
	return &RecommendationEngine{
		recipes:  recipes,
		feedback: feedback,
		weights:  DefaultEngineWeights(),
		Now:      time.Now,
	}
}

// Recommend returns up to count recipes for the baby, best first.
// mealType narrows candidates when non-empty. excludeRecentDays > 0
// drops recipes recommended to this baby within that many days.
// Allergen-containing recipes never appear in the output.
func (e *RecommendationEngine) Recommend(baby *models.Baby, count int, mealType string, excludeRecentDays int) ([]Recommendation, error) {
	if baby.BirthDate.IsZero() {
		return nil, ErrInvalidProfile
	}

	now := e.Now()
	ageMonths := baby.AgeMonths(now)

	recipes, err := e.recipes.FindEligible(ageMonths, mealType)
	if err != nil {
		return nil, err
	}

	if excludeRecentDays > 0 {
		cutoff := now.AddDate(0, 0, -excludeRecentDays)
		recent, err := e.feedback.RecentRecipeIDs(baby.ID, cutoff)
		if err != nil {
			return nil, err
		}
		kept := recipes[:0]
		for _, r := range recipes {
			if _, ok := recent[r.ID]; !ok {
				kept = append(kept, r)
			}
		}
		recipes = kept
	}

	scored := make([]Recommendation, 0, len(recipes))
	for _, recipe := range recipes {
		score, reason, err := e.scoreRecipe(baby, &recipe)
		if err != nil {
			return nil, err
		}
		if score > 0 {
			scored = append(scored, Recommendation{Recipe: recipe, Score: score, Reason: reason})
		}
	}

	// Stable sort keeps query order between equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > count {
		scored = scored[:count]
	}
	return scored, nil
}

// scoreRecipe combines the three components into a 0-1 score plus a
// short technical reason.
func (e *RecommendationEngine) scoreRecipe(baby *models.Baby, recipe *models.Recipe) (float64, string, error) {
	// Allergens disqualify outright.
	if recipe.HasAllergen(baby.Allergies) {
		return 0.0, "Contains allergens", nil
	}

	nutritionScore := recipe.NutritionScore() / 100.0
	preferenceScore := e.preferenceScore(baby, recipe)

	historicalScore, err := e.historicalScore(baby, recipe)
	if err != nil {
		return 0, "", err
	}

	finalScore := e.weights.Nutrition*nutritionScore +
		e.weights.Preference*preferenceScore +
		e.weights.Historical*historicalScore

	var reasons []string
	if nutritionScore > 0.7 {
		reasons = append(reasons, "high nutritional value")
	}
	if preferenceScore > 0.6 {
		reasons = append(reasons, "matches taste preferences")
	}
	if historicalScore > 0.7 {
		reasons = append(reasons, "similar recipes were enjoyed")
	} else if historicalScore > 0 {
		reasons = append(reasons, "appropriate for age stage")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "suitable for baby's age")
	}

	return finalScore, capitalize(strings.Join(reasons, ", ")), nil
}

// preferenceScore rates ingredient match 0-1. A disliked match wins
// over any number of liked matches.
func (e *RecommendationEngine) preferenceScore(baby *models.Baby, recipe *models.Recipe) float64 {
	if len(recipe.Ingredients) == 0 {
		return 0.5
	}

	names := lowerIngredientNames(recipe.Ingredients)

	for _, disliked := range baby.DislikedIngredients {
		if containsSubstring(names, strings.ToLower(disliked)) {
			return 0.1
		}
	}

	likedCount := 0
	for _, liked := range baby.LikedIngredients {
		if containsSubstring(names, strings.ToLower(liked)) {
			likedCount++
		}
	}
	if likedCount > 0 {
		score := 0.5 + 0.2*float64(likedCount)
		if score > 1.0 {
			score = 1.0
		}
		return score
	}

	return 0.5
}

// historicalScore uses the baby's own feedback when present, then the
// recipe's average accepted rating, then a neutral 0.5.
func (e *RecommendationEngine) historicalScore(baby *models.Baby, recipe *models.Recipe) (float64, error) {
	fb, err := e.feedback.ForBabyRecipe(baby.ID, recipe.ID)
	if err != nil {
		return 0, err
	}
	if fb != nil {
		return fb.Score(), nil
	}

	ratings, err := e.feedback.AcceptedRatingsForRecipe(recipe.ID)
	if err != nil {
		return 0, err
	}
	if len(ratings) > 0 {
		var sum float64
		for _, r := range ratings {
			sum += r
		}
		return sum / float64(len(ratings)) / 5.0, nil
	}

	return 0.5, nil
}

func lowerIngredientNames(ingredients []models.Ingredient) []string {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		names = append(names, strings.ToLower(ing.Name))
	}
	return names
}

func containsSubstring(names []string, needle string) bool {
	for _, name := range names {
		if strings.Contains(name, needle) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
