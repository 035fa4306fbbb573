package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lareinaLY/baby-meal-recommendation/config"
	"github.com/lareinaLY/baby-meal-recommendation/models"
	"github.com/lareinaLY/baby-meal-recommendation/services"
)

// RecommendationController wires the scoring services to HTTP. The
// explanation port is built once at construction and stays nil when no
// API key is configured; recommendations then carry the technical
// reason strings instead of generated prose.
type RecommendationController struct {
	cfg config.AppConfig
	llm services.TextExplanationPort
}

func NewRecommendationController(cfg config.AppConfig) *RecommendationController {
	var llm services.TextExplanationPort
	if cfg.OpenAIKey != "" {
		llm = services.NewOpenAIExplanationService(cfg.OpenAIKey, cfg.LLMModel)
	}
	return &RecommendationController{cfg: cfg, llm: llm}
}

type RecommendationRequest struct {
	BabyID                     uint   `json:"baby_id" binding:"required"`
	Count                      int    `json:"count" binding:"omitempty,gte=1"`
	MealType                   string `json:"meal_type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	ExcludeRecentlyRecommended *bool  `json:"exclude_recently_recommended"`
}

// Recommend serves the rule-based ranking.
func (rc *RecommendationController) Recommend(c *gin.Context) {
	req, baby, ok := rc.parseRequest(c)
	if !ok {
		return
	}

	excludeDays := 0
	if req.ExcludeRecentlyRecommended == nil || *req.ExcludeRecentlyRecommended {
		excludeDays = rc.cfg.ExcludeRecentDays
	}

	engine := services.NewRecommendationEngine(
		services.NewGormRecipeStore(config.DB),
		services.NewGormFeedbackStore(config.DB),
	)
	recs, err := engine.Recommend(baby, req.Count, req.MealType, excludeDays)
	if err != nil {
		rc.renderEngineError(c, err)
		return
	}

	out := make([]gin.H, 0, len(recs))
	for i := range recs {
		resp := recipeResponse(&recs[i].Recipe)
		resp["recommendation_score"] = round3(recs[i].Score)
		resp["match_reason"] = recs[i].Reason
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

// RecommendSmart serves the LLM-augmented layer.
func (rc *RecommendationController) RecommendSmart(c *gin.Context) {
	req, baby, ok := rc.parseRequest(c)
	if !ok {
		return
	}

	recipeStore := services.NewGormRecipeStore(config.DB)
	engine := services.NewRecommendationEngine(recipeStore, services.NewGormFeedbackStore(config.DB))
	prefs := services.NewPreferenceHandler(recipeStore)
	smart := services.NewSmartRecommendationService(engine, prefs, rc.llm)

	result, err := smart.Recommend(c.Request.Context(), baby, req.Count, req.MealType)
	if err != nil {
		rc.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (rc *RecommendationController) parseRequest(c *gin.Context) (RecommendationRequest, *models.Baby, bool) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, nil, false
	}

	if req.Count == 0 {
		req.Count = rc.cfg.DefaultRecommendationCount
	}
	if req.Count > rc.cfg.MaxRecommendationCount {
		req.Count = rc.cfg.MaxRecommendationCount
	}

	baby, ok := ownedBabyByID(c, req.BabyID)
	if !ok {
		return req, nil, false
	}
	return req, baby, true
}

func (rc *RecommendationController) renderEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidProfile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBabyNotFound), errors.Is(err, services.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
