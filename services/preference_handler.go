package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lareinaLY/baby-meal-recommendation/models"
	"github.com/lareinaLY/baby-meal-recommendation/utils"
)

// PenaltyDecay maps an ingredient's rejection count to a score
// multiplier. Literals carried over from tuning; the floor keeps a
// recipe recommendable so the baby keeps getting re-exposure chances.
type PenaltyDecay struct {
	FirstReject  float64
	SecondReject float64
	Repeated     float64
	Floor        float64
}

func DefaultPenaltyDecay() PenaltyDecay {
	return PenaltyDecay{FirstReject: 0.7, SecondReject: 0.4, Repeated: 0.1, Floor: 0.1}
}

// NutritionGroup is a curated set of ingredients sharing a dominant
// nutrient role. Used only for alternative lookup, never persisted.
type NutritionGroup struct {
	Name        string
	Ingredients []string
}

// Ordered so first-match-wins stays deterministic.
var nutritionGroups = []NutritionGroup{
	{"vitamin_a_sources", []string{"carrot", "sweet potato", "pumpkin", "spinach", "mango"}},
	{"iron_sources", []string{"red lentils", "beef", "chicken", "spinach", "fortified cereal"}},
	{"calcium_sources", []string{"yogurt", "cheese", "tofu", "broccoli", "fortified milk"}},
	{"protein_sources", []string{"chicken", "beef", "lentils", "beans", "tofu", "eggs"}},
	{"vitamin_c_sources", []string{"orange", "strawberry", "kiwi", "bell pepper", "broccoli"}},
}

var nutritionImportance = map[string]string{
	"spinach":  "rich in iron and folate, crucial for blood health",
	"carrot":   "high in vitamin A, essential for vision and immune system",
	"broccoli": "contains vitamin C, K, and fiber",
	"lentils":  "excellent plant-based protein and iron source",
	"yogurt":   "provides calcium and probiotics for gut health",
}

// Alternative is a recipe offering a nutritionally similar ingredient
// in place of a disliked one.
type Alternative struct {
	Recipe                models.Recipe `json:"recipe"`
	AlternativeIngredient string        `json:"alternative_ingredient"`
	Similarity            float64       `json:"similarity_score"`
}

// Preparation is a recipe using an ingredient with an inferred
// preparation method.
type Preparation struct {
	Recipe models.Recipe `json:"recipe"`
	Method string        `json:"method"`
}

// AlternativeSuggestion is one ingredient-level swap idea, either
// rule-based or from the explanation port.
type AlternativeSuggestion struct {
	Ingredient     string `json:"ingredient"`
	Reason         string `json:"reason"`
	PreparationTip string `json:"preparation_tip"`
}

// RetryPlan is the structured plan returned when a dislike is
// reported.
type RetryPlan struct {
	NextRetryDate        time.Time `json:"next_retry_date"`
	SuggestedPreparation string    `json:"suggested_preparation"`
	MixingStrategy       string    `json:"mixing_strategy"`
	MaxAttempts          int       `json:"max_attempts"`
	CurrentAttempts      int       `json:"current_attempts"`
}

// DislikeStrategy bundles what to do about a disliked ingredient.
type DislikeStrategy struct {
	Ingredient     string                  `json:"ingredient"`
	NutritionGroup string                  `json:"nutrition_group,omitempty"`
	Alternatives   []AlternativeSuggestion `json:"alternatives"`
	RetryPlan      RetryPlan               `json:"retry_plan"`
}

// PreferenceHandler turns binary like/dislike signals into soft,
// decaying penalties and retry scheduling. Disliked foods are never
// filtered outright; they fade and come back.
type PreferenceHandler struct {
	recipes RecipeStore
	decay   PenaltyDecay

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewPreferenceHandler(recipes RecipeStore) *PreferenceHandler {
	return &PreferenceHandler{
		recipes: recipes,
		decay:   DefaultPenaltyDecay(),
		Now:     time.Now,
	}
}

// Penalty computes the multiplicative dampener for a recipe given the
// baby's dislikes. Each matched disliked ingredient compounds a decay
// factor keyed to its attempt count. Result stays within
// [decay.Floor, 1.0].
func (h *PreferenceHandler) Penalty(recipe *models.Recipe, baby *models.Baby) float64 {
	penalty := 1.0
	names := lowerIngredientNames(recipe.Ingredients)

	for _, disliked := range baby.DislikedIngredients {
		if !containsSubstring(names, strings.ToLower(disliked)) {
			continue
		}
		switch attempts := baby.AttemptsFor(disliked); {
		case attempts == 0:
			penalty *= h.decay.FirstReject
		case attempts == 1:
			penalty *= h.decay.SecondReject
		default:
			penalty *= h.decay.Repeated
		}
	}

	if penalty < h.decay.Floor {
		return h.decay.Floor
	}
	return penalty
}

// ShouldRetry decides whether it is time to offer a disliked
// ingredient again. The branches form a priority chain; the first
// match wins.
func (h *PreferenceHandler) ShouldRetry(ingredient string, baby *models.Baby) (bool, string) {
	now := h.Now()

	attempt, tracked := baby.AttemptHistory(ingredient)
	if !tracked {
		return true, "Never tried before"
	}

	if !attempt.LastTry.IsZero() {
		days := utils.DaysSince(attempt.LastTry, now)

		// Minimum spacing between retries.
		if days < 14 {
			return false, fmt.Sprintf("Too soon (only %d days since last try)", days)
		}

		// Tastes shift as babies grow; older babies get retried sooner.
		if baby.AgeMonths(now) > 10 && days >= 30 {
			return true, "Baby is older, tastes may have changed"
		}
	}

	if attempt.Attempts < 3 {
		return true, fmt.Sprintf("Only tried %d times, worth another attempt", attempt.Attempts)
	}

	return false, "Multiple rejections, focus on alternatives"
}

// NutritionGroupFor finds the group an ingredient belongs to, matching
// case-insensitively in both substring directions. Empty when the
// ingredient maps to no group.
func (h *PreferenceHandler) NutritionGroupFor(ingredient string) string {
	lower := strings.ToLower(ingredient)
	for _, group := range nutritionGroups {
		for _, member := range group.Ingredients {
			m := strings.ToLower(member)
			if strings.Contains(m, lower) || strings.Contains(lower, m) {
				return group.Name
			}
		}
	}
	return ""
}

// Alternatives finds age-eligible recipes built around other members
// of the disliked ingredient's nutrition group, best match first, top
// five. Empty when the ingredient has no group.
func (h *PreferenceHandler) Alternatives(dislikedIngredient string, baby *models.Baby) ([]Alternative, error) {
	groupName := h.NutritionGroupFor(dislikedIngredient)
	if groupName == "" {
		return nil, nil
	}

	var members []string
	for _, group := range nutritionGroups {
		if group.Name == groupName {
			members = group.Ingredients
			break
		}
	}

	recipes, err := h.recipes.FindEligible(baby.AgeMonths(h.Now()), "")
	if err != nil {
		return nil, err
	}

	var alternatives []Alternative
	for _, member := range members {
		if strings.EqualFold(member, dislikedIngredient) {
			continue
		}
		alt := strings.ToLower(member)
		for _, recipe := range recipes {
			if containsSubstring(lowerIngredientNames(recipe.Ingredients), alt) {
				alternatives = append(alternatives, Alternative{
					Recipe:                recipe,
					AlternativeIngredient: member,
					Similarity:            h.nutritionSimilarity(dislikedIngredient, member),
				})
			}
		}
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].Similarity > alternatives[j].Similarity
	})

	if len(alternatives) > 5 {
		alternatives = alternatives[:5]
	}
	return alternatives, nil
}

// DifferentPreparations lists age-eligible recipes containing the
// ingredient along with the preparation method inferred from each
// recipe's name and instructions.
func (h *PreferenceHandler) DifferentPreparations(ingredient string, baby *models.Baby) ([]Preparation, error) {
	recipes, err := h.recipes.FindEligible(baby.AgeMonths(h.Now()), "")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(ingredient)
	var preparations []Preparation
	for _, recipe := range recipes {
		if containsSubstring(lowerIngredientNames(recipe.Ingredients), needle) {
			preparations = append(preparations, Preparation{
				Recipe: recipe,
				Method: inferPreparationMethod(&recipe),
			})
		}
	}
	return preparations, nil
}

// HandleDisliked builds the full response to a reported dislike:
// swap suggestions plus a structured retry plan. When an explanation
// port is supplied its suggestions are preferred; otherwise the
// nutrition-group fallback applies.
func (h *PreferenceHandler) HandleDisliked(ingredient string, baby *models.Baby, suggestions []AlternativeSuggestion) DislikeStrategy {
	groupName := h.NutritionGroupFor(ingredient)

	if len(suggestions) == 0 {
		suggestions = h.fallbackAlternatives(ingredient, groupName)
	}

	return DislikeStrategy{
		Ingredient:     ingredient,
		NutritionGroup: groupName,
		Alternatives:   suggestions,
		RetryPlan:      h.retryPlan(ingredient, baby),
	}
}

// NutritionImportance explains why the ingredient matters, falling
// back to a generic line for unmapped ingredients.
func (h *PreferenceHandler) NutritionImportance(ingredient string) string {
	lower := strings.ToLower(ingredient)
	for key, importance := range nutritionImportance {
		if strings.Contains(lower, key) {
			return importance
		}
	}
	return "important for balanced nutrition"
}

func (h *PreferenceHandler) nutritionSimilarity(a, b string) float64 {
	groupA := h.NutritionGroupFor(a)
	groupB := h.NutritionGroupFor(b)
	if groupA != "" && groupA == groupB {
		return 0.9
	}
	return 0.5
}

func (h *PreferenceHandler) retryPlan(ingredient string, baby *models.Baby) RetryPlan {
	mixWith := "favorite food"
	if len(baby.LikedIngredients) > 0 {
		mixWith = baby.LikedIngredients[0]
	}
	return RetryPlan{
		NextRetryDate:        h.Now().AddDate(0, 0, 14),
		SuggestedPreparation: "different from previous attempt",
		MixingStrategy:       fmt.Sprintf("Try mixing with %s", mixWith),
		MaxAttempts:          5,
		CurrentAttempts:      baby.AttemptsFor(ingredient),
	}
}

func (h *PreferenceHandler) fallbackAlternatives(ingredient, groupName string) []AlternativeSuggestion {
	if groupName == "" {
		return nil
	}

	var members []string
	for _, group := range nutritionGroups {
		if group.Name == groupName {
			members = group.Ingredients
			break
		}
	}

	var out []AlternativeSuggestion
	for _, member := range members {
		if len(out) == 3 {
			break
		}
		if strings.EqualFold(member, ingredient) {
			continue
		}
		out = append(out, AlternativeSuggestion{
			Ingredient:     member,
			Reason:         fmt.Sprintf("Similar nutrition to %s", ingredient),
			PreparationTip: "Steam or puree for easy digestion",
		})
	}
	return out
}

// inferPreparationMethod labels how a recipe prepares its food from
// name and instruction keywords. First matching rule wins.
func inferPreparationMethod(recipe *models.Recipe) string {
	name := strings.ToLower(recipe.Name)
	instructions := strings.ToLower(recipe.Instructions)

	switch {
	case strings.Contains(name, "puree") || strings.Contains(instructions, "mash"):
		return "pureed"
	case strings.Contains(name, "finger") || strings.Contains(name, "stick"):
		return "finger_food"
	case strings.Contains(name, "pancake") || strings.Contains(name, "muffin"):
		return "baked_mixed"
	case strings.Contains(instructions, "steam"):
		return "steamed"
	case strings.Contains(instructions, "roast") || strings.Contains(instructions, "bake"):
		return "roasted"
	default:
		return "other"
	}
}
