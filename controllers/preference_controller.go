package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lareinaLY/baby-meal-recommendation/config"
	"github.com/lareinaLY/baby-meal-recommendation/models"
	"github.com/lareinaLY/baby-meal-recommendation/services"
)

// PreferenceController exposes the dislike-handling operations: swap
// suggestions, retry scheduling and preparation variants.
type PreferenceController struct {
	llm services.TextExplanationPort
}

func NewPreferenceController(cfg config.AppConfig) *PreferenceController {
	var llm services.TextExplanationPort
	if cfg.OpenAIKey != "" {
		llm = services.NewOpenAIExplanationService(cfg.OpenAIKey, cfg.LLMModel)
	}
	return &PreferenceController{llm: llm}
}

type DislikeInput struct {
	BabyID     uint   `json:"baby_id" binding:"required"`
	Ingredient string `json:"ingredient" binding:"required"`
	Reason     string `json:"reason"`
}

// HandleDislike reports a disliked ingredient and returns the
// strategy: alternatives plus a retry plan.
func (pc *PreferenceController) HandleDislike(c *gin.Context) {
	var input DislikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baby, ok := ownedBabyByID(c, input.BabyID)
	if !ok {
		return
	}

	prefs := services.NewPreferenceHandler(services.NewGormRecipeStore(config.DB))

	var suggestions []services.AlternativeSuggestion
	if pc.llm != nil {
		reason := input.Reason
		if reason == "" {
			reason = "baby_refused"
		}
		var err error
		suggestions, err = pc.llm.SuggestAlternatives(
			c.Request.Context(), input.Ingredient, baby,
			prefs.NutritionGroupFor(input.Ingredient), reason,
		)
		if err != nil {
			log.Printf("alternative suggestions failed for %q: %v", input.Ingredient, err)
			suggestions = nil
		}
	}

	c.JSON(http.StatusOK, prefs.HandleDisliked(input.Ingredient, baby, suggestions))
}

// ShouldRetry answers whether a disliked ingredient is due another
// attempt.
func (pc *PreferenceController) ShouldRetry(c *gin.Context) {
	baby, ingredient, ok := pc.babyAndIngredient(c)
	if !ok {
		return
	}

	prefs := services.NewPreferenceHandler(services.NewGormRecipeStore(config.DB))
	retry, reason := prefs.ShouldRetry(ingredient, baby)

	c.JSON(http.StatusOK, gin.H{
		"ingredient":    ingredient,
		"should_retry":  retry,
		"reason":        reason,
		"attempt_count": baby.AttemptsFor(ingredient),
	})
}

// Preparations lists age-eligible recipes using the ingredient with
// their inferred preparation methods.
func (pc *PreferenceController) Preparations(c *gin.Context) {
	baby, ingredient, ok := pc.babyAndIngredient(c)
	if !ok {
		return
	}

	prefs := services.NewPreferenceHandler(services.NewGormRecipeStore(config.DB))
	preps, err := prefs.DifferentPreparations(ingredient, baby)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(preps))
	for i := range preps {
		out = append(out, gin.H{
			"recipe": recipeResponse(&preps[i].Recipe),
			"method": preps[i].Method,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (pc *PreferenceController) babyAndIngredient(c *gin.Context) (*models.Baby, string, bool) {
	ingredient := c.Query("ingredient")
	if ingredient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient query parameter required"})
		return nil, "", false
	}

	id, err := strconv.ParseUint(c.Param("babyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid baby id"})
		return nil, "", false
	}

	baby, ok := ownedBabyByID(c, uint(id))
	if !ok {
		return nil, "", false
	}
	return baby, ingredient, true
}
