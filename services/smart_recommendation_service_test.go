package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lareinaLY/baby-meal-recommendation/models"
	"github.com/lareinaLY/baby-meal-recommendation/services"
)

// stubExplainer is a scriptable TextExplanationPort.
type stubExplainer struct {
	explainText string
	failAll     bool
	suggestions []services.AlternativeSuggestion
}

func (s *stubExplainer) Explain(_ context.Context, recipe *models.Recipe, _ *models.Baby, technicalReason string) (string, error) {
	if s.failAll {
		return "", errors.New("llm unavailable")
	}
	return s.explainText + ": " + recipe.Name, nil
}

func (s *stubExplainer) SuggestAlternatives(_ context.Context, _ string, _ *models.Baby, _, _ string) ([]services.AlternativeSuggestion, error) {
	if s.failAll {
		return nil, errors.New("llm unavailable")
	}
	return s.suggestions, nil
}

func (s *stubExplainer) Summarize(_ context.Context, baby *models.Baby, _ []string, _, _ int) (string, error) {
	if s.failAll {
		return "", errors.New("llm unavailable")
	}
	return "A gentle plan for " + baby.Name, nil
}

func newSmart(recipes []models.Recipe, feedbacks []models.Feedback, llm services.TextExplanationPort) *services.SmartRecommendationService {
	store := &fakeRecipeStore{recipes: recipes}
	engine := services.NewRecommendationEngine(store, &fakeFeedbackStore{feedbacks: feedbacks})
	engine.Now = func() time.Time { return testNow }
	prefs := services.NewPreferenceHandler(store)
	prefs.Now = func() time.Time { return testNow }

	svc := services.NewSmartRecommendationService(engine, prefs, llm)
	svc.Now = func() time.Time { return testNow }
	return svc
}

func TestSmartRecommendPenaltyReordersResults(t *testing.T) {
	t.Parallel()

	// High base score but disliked twice; penalty 0.1 drops it below
	// the plain recipe.
	rich := recipeWithID(1, "Spinach Power Bowl", "spinach")
	rich.ProteinG = 10
	rich.FiberG = 3
	plain := recipeWithID(2, "Rice Porridge", "rice")

	baby := sixMonthBaby()
	baby.Name = "Mia"
	baby.DislikedIngredients = []string{"spinach"}
	baby.TriedIngredients = map[string]models.IngredientAttempt{
		"spinach": {Attempts: 2, LastTry: testNow.AddDate(0, 0, -20)},
	}

	svc := newSmart([]models.Recipe{rich, plain}, nil, nil)
	result, err := svc.Recommend(context.Background(), baby, 5, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	recs := result.PrimaryRecommendations
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].Recipe.ID != plain.ID {
		t.Fatalf("penalized recipe still ranked first")
	}

	penalized := recs[1]
	if !penalized.PenaltyApplied {
		t.Fatalf("expected penalty flag on disliked recipe")
	}
	if !penalized.IsRetry {
		t.Fatalf("expected retry flag on recipe with disliked ingredient")
	}
	if !approxEqual(penalized.Score, penalized.OriginalScore*0.1) {
		t.Fatalf("score = %f, want original %f x 0.1", penalized.Score, penalized.OriginalScore)
	}
}

func TestSmartRecommendWithoutPortKeepsTechnicalReasons(t *testing.T) {
	t.Parallel()

	recipe := recipeWithID(1, "Banana Mash", "banana")
	baby := sixMonthBaby()
	baby.Name = "Mia"
	baby.LikedIngredients = []string{"banana"}

	svc := newSmart([]models.Recipe{recipe}, nil, nil)
	result, err := svc.Recommend(context.Background(), baby, 5, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	rec := result.PrimaryRecommendations[0]
	if rec.Explanation != "Matches taste preferences, appropriate for age stage" {
		t.Fatalf("explanation = %q, want technical reason", rec.Explanation)
	}
	if !strings.Contains(result.OverallExplanation, "Mia") {
		t.Fatalf("fallback overall explanation should mention the baby, got %q", result.OverallExplanation)
	}
}

func TestSmartRecommendPortFailureDegradesGracefully(t *testing.T) {
	t.Parallel()

	recipe := recipeWithID(1, "Banana Mash", "banana")
	baby := sixMonthBaby()
	baby.Name = "Mia"
	baby.LikedIngredients = []string{"banana"}
	baby.DislikedIngredients = []string{"carrot"}

	broken := &stubExplainer{failAll: true}
	svc := newSmart([]models.Recipe{recipe}, nil, broken)

	result, err := svc.Recommend(context.Background(), baby, 5, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v, port failures must not abort", err)
	}

	rec := result.PrimaryRecommendations[0]
	if rec.Explanation != "Matches taste preferences, appropriate for age stage" {
		t.Fatalf("explanation = %q, want technical fallback", rec.Explanation)
	}
	if !strings.Contains(result.OverallExplanation, "Mia") {
		t.Fatalf("overall explanation fallback missing, got %q", result.OverallExplanation)
	}
	if alt, ok := result.Alternatives["carrot"]; !ok || len(alt.LLMSuggestions) != 0 {
		t.Fatalf("expected carrot alternatives without llm suggestions, got %+v", alt)
	}
}

func TestSmartRecommendUsesPortWhenAvailable(t *testing.T) {
	t.Parallel()

	recipe := recipeWithID(1, "Banana Mash", "banana")
	baby := sixMonthBaby()
	baby.Name = "Mia"
	baby.LikedIngredients = []string{"banana"}
	baby.DislikedIngredients = []string{"carrot"}

	port := &stubExplainer{
		explainText: "Great pick",
		suggestions: []services.AlternativeSuggestion{
			{Ingredient: "sweet potato", Reason: "same vitamin A", PreparationTip: "steam"},
		},
	}
	svc := newSmart([]models.Recipe{recipe}, nil, port)

	result, err := svc.Recommend(context.Background(), baby, 5, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	rec := result.PrimaryRecommendations[0]
	if rec.Explanation != "Great pick: Banana Mash" {
		t.Fatalf("explanation = %q, want port output", rec.Explanation)
	}
	if result.OverallExplanation != "A gentle plan for Mia" {
		t.Fatalf("overall explanation = %q, want port output", result.OverallExplanation)
	}

	alt := result.Alternatives["carrot"]
	if len(alt.LLMSuggestions) != 1 || alt.LLMSuggestions[0].Ingredient != "sweet potato" {
		t.Fatalf("llm suggestions not carried through: %+v", alt.LLMSuggestions)
	}
	if alt.NutritionImportance == "" {
		t.Fatalf("missing nutrition importance")
	}
}

func TestSmartRecommendBuildsRetrySuggestions(t *testing.T) {
	t.Parallel()

	carrotPuree := recipeWithID(1, "Carrot Puree", "carrot")
	carrotFingers := recipeWithID(2, "Carrot Fingers", "carrot")

	baby := sixMonthBaby()
	baby.Name = "Mia"
	baby.DislikedIngredients = []string{"carrot"}

	svc := newSmart([]models.Recipe{carrotPuree, carrotFingers}, nil, nil)
	result, err := svc.Recommend(context.Background(), baby, 5, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(result.RetrySuggestions) != 1 {
		t.Fatalf("expected 1 retry suggestion, got %d", len(result.RetrySuggestions))
	}
	retry := result.RetrySuggestions[0]
	if retry.Reason != "Never tried before" {
		t.Fatalf("retry reason = %q", retry.Reason)
	}
	if len(retry.DifferentPreparations) != 2 {
		t.Fatalf("expected 2 preparation variants, got %d", len(retry.DifferentPreparations))
	}
	if retry.DifferentPreparations[0] != "Carrot Puree (pureed)" {
		t.Fatalf("preparation format = %q", retry.DifferentPreparations[0])
	}
}
