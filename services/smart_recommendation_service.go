package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/lareinaLY/baby-meal-recommendation/models"
)

// SmartRecommendation is one penalty-adjusted, explained result.
type SmartRecommendation struct {
	Recipe         models.Recipe `json:"recipe"`
	Score          float64       `json:"score"`
	Explanation    string        `json:"explanation"`
	IsRetry        bool          `json:"is_retry"`
	PenaltyApplied bool          `json:"penalty_applied"`
	OriginalScore  float64       `json:"original_score"`
}

// IngredientAlternatives collects everything offered in place of one
// disliked ingredient.
type IngredientAlternatives struct {
	Ingredient          string                  `json:"ingredient"`
	NutritionImportance string                  `json:"nutrition_importance"`
	AlternativeRecipes  []Alternative           `json:"alternative_recipes"`
	LLMSuggestions      []AlternativeSuggestion `json:"llm_suggestions"`
}

// RetrySuggestion proposes re-offering a disliked ingredient.
type RetrySuggestion struct {
	Ingredient            string   `json:"ingredient"`
	Reason                string   `json:"reason"`
	DifferentPreparations []string `json:"different_preparations"`
	AttemptCount          int      `json:"attempt_count"`
}

// SmartRecommendationResult is the full smart-endpoint payload.
type SmartRecommendationResult struct {
	PrimaryRecommendations []SmartRecommendation             `json:"primary_recommendations"`
	Alternatives           map[string]IngredientAlternatives `json:"alternatives"`
	RetrySuggestions       []RetrySuggestion                 `json:"retry_suggestions"`
	OverallExplanation     string                            `json:"overall_explanation"`
}

// SmartRecommendationService layers preference penalties, retry
// strategy and prose explanations on top of the rule engine. The
// explanation port may be nil; everything then falls back to the
// technical reason strings and rule-based suggestions without touching
// the scores.
type SmartRecommendationService struct {
	engine *RecommendationEngine
	prefs  *PreferenceHandler
	llm    TextExplanationPort

	Now func() time.Time
}

func NewSmartRecommendationService(engine *RecommendationEngine, prefs *PreferenceHandler, llm TextExplanationPort) *SmartRecommendationService {
	return &SmartRecommendationService{
		engine: engine,
		prefs:  prefs,
		llm:    llm,
		Now:    time.Now,
	}
}

// Recommend assembles the smart payload for a baby.
func (s *SmartRecommendationService) Recommend(ctx context.Context, baby *models.Baby, count int, mealType string) (*SmartRecommendationResult, error) {
	primary, err := s.primaryRecommendations(ctx, baby, count, mealType)
	if err != nil {
		return nil, err
	}

	alternatives, err := s.alternativesForDislikes(ctx, baby)
	if err != nil {
		return nil, err
	}

	retries, err := s.retrySuggestions(baby)
	if err != nil {
		return nil, err
	}

	return &SmartRecommendationResult{
		PrimaryRecommendations: primary,
		Alternatives:           alternatives,
		RetrySuggestions:       retries,
		OverallExplanation:     s.overallExplanation(ctx, baby, primary, len(alternatives)),
	}, nil
}

// primaryRecommendations over-fetches rule candidates, applies the
// soft dislike penalty and re-ranks on the adjusted score.
func (s *SmartRecommendationService) primaryRecommendations(ctx context.Context, baby *models.Baby, count int, mealType string) ([]SmartRecommendation, error) {
	// Triple the candidate pool so penalties have recipes to demote.
	candidates, err := s.engine.Recommend(baby, count*3, mealType, 0)
	if err != nil {
		return nil, err
	}

	results := make([]SmartRecommendation, 0, len(candidates))
	for _, cand := range candidates {
		recipe := cand.Recipe
		penalty := s.prefs.Penalty(&recipe, baby)
		adjusted := cand.Score * penalty

		explanation := cand.Reason
		if s.llm != nil && adjusted > 0.3 {
			text, err := s.llm.Explain(ctx, &recipe, baby, cand.Reason)
			if err != nil {
				log.Printf("explanation generation failed for %q: %v", recipe.Name, err)
			} else {
				explanation = text
			}
		}

		results = append(results, SmartRecommendation{
			Recipe:         recipe,
			Score:          adjusted,
			Explanation:    explanation,
			IsRetry:        s.isRetry(&recipe, baby),
			PenaltyApplied: penalty < 1.0,
			OriginalScore:  cand.Score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > count {
		results = results[:count]
	}
	return results, nil
}

func (s *SmartRecommendationService) alternativesForDislikes(ctx context.Context, baby *models.Baby) (map[string]IngredientAlternatives, error) {
	out := make(map[string]IngredientAlternatives, len(baby.DislikedIngredients))

	for _, disliked := range baby.DislikedIngredients {
		recipes, err := s.prefs.Alternatives(disliked, baby)
		if err != nil {
			return nil, err
		}

		var suggestions []AlternativeSuggestion
		if s.llm != nil {
			group := s.prefs.NutritionGroupFor(disliked)
			suggestions, err = s.llm.SuggestAlternatives(ctx, disliked, baby, group, "baby_refused")
			if err != nil {
				log.Printf("alternative suggestions failed for %q: %v", disliked, err)
				suggestions = nil
			}
		}

		out[disliked] = IngredientAlternatives{
			Ingredient:          disliked,
			NutritionImportance: s.prefs.NutritionImportance(disliked),
			AlternativeRecipes:  recipes,
			LLMSuggestions:      suggestions,
		}
	}
	return out, nil
}

func (s *SmartRecommendationService) retrySuggestions(baby *models.Baby) ([]RetrySuggestion, error) {
	var suggestions []RetrySuggestion

	for _, disliked := range baby.DislikedIngredients {
		retry, reason := s.prefs.ShouldRetry(disliked, baby)
		if !retry {
			continue
		}

		preps, err := s.prefs.DifferentPreparations(disliked, baby)
		if err != nil {
			return nil, err
		}
		formatted := make([]string, 0, len(preps))
		for _, p := range preps {
			formatted = append(formatted, fmt.Sprintf("%s (%s)", p.Recipe.Name, p.Method))
		}

		suggestions = append(suggestions, RetrySuggestion{
			Ingredient:            disliked,
			Reason:                reason,
			DifferentPreparations: formatted,
			AttemptCount:          baby.AttemptsFor(disliked),
		})
	}
	return suggestions, nil
}

func (s *SmartRecommendationService) overallExplanation(ctx context.Context, baby *models.Baby, primary []SmartRecommendation, alternativeCount int) string {
	fallback := fmt.Sprintf("Personalized recommendations for %s based on age and preferences.", baby.Name)
	if s.llm == nil {
		return fallback
	}

	names := make([]string, 0, len(primary))
	retries := 0
	for _, rec := range primary {
		names = append(names, rec.Recipe.Name)
		if rec.IsRetry {
			retries++
		}
	}

	text, err := s.llm.Summarize(ctx, baby, names, retries, alternativeCount)
	if err != nil {
		log.Printf("overall explanation failed: %v", err)
		return fallback
	}
	return text
}

// isRetry flags recipes that contain a previously disliked ingredient.
func (s *SmartRecommendationService) isRetry(recipe *models.Recipe, baby *models.Baby) bool {
	names := lowerIngredientNames(recipe.Ingredients)
	for _, disliked := range baby.DislikedIngredients {
		if containsSubstring(names, strings.ToLower(disliked)) {
			return true
		}
	}
	return false
}
