package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lareinaLY/baby-meal-recommendation/models"
	"github.com/lareinaLY/baby-meal-recommendation/services"
)

func SubmitFeedback(c *gin.Context) {
	var input services.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := ownedBabyByID(c, input.BabyID); !ok {
		return
	}

	fb, err := services.SubmitFeedback(input)
	if err != nil {
		renderFeedbackError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedbackResponse(fb))
}

func ListBabyFeedback(c *gin.Context) {
	babyID, err := strconv.ParseUint(c.Param("babyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid baby id"})
		return
	}
	if _, ok := ownedBabyByID(c, uint(babyID)); !ok {
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	feedbacks, err := services.ListFeedbackForBaby(uint(babyID), skip, limit)
	if err != nil {
		renderFeedbackError(c, err)
		return
	}

	out := make([]gin.H, 0, len(feedbacks))
	for i := range feedbacks {
		out = append(out, feedbackResponse(&feedbacks[i]))
	}
	c.JSON(http.StatusOK, out)
}

func UpdateFeedback(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback id"})
		return
	}

	var update services.FeedbackUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !ownsFeedback(c, uint(id)) {
		return
	}

	fb, err := services.UpdateFeedback(uint(id), update)
	if err != nil {
		renderFeedbackError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedbackResponse(fb))
}

func DeleteFeedback(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback id"})
		return
	}

	if !ownsFeedback(c, uint(id)) {
		return
	}

	if err := services.DeleteFeedback(uint(id)); err != nil {
		renderFeedbackError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ownsFeedback checks that the feedback's baby belongs to the
// authenticated user. Writes the error response itself on failure.
func ownsFeedback(c *gin.Context, id uint) bool {
	fb, err := services.FeedbackByID(id)
	if err != nil {
		renderFeedbackError(c, err)
		return false
	}
	_, ok := ownedBabyByID(c, fb.BabyID)
	return ok
}

func renderFeedbackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBabyNotFound),
		errors.Is(err, services.ErrRecipeNotFound),
		errors.Is(err, services.ErrFeedbackNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func feedbackResponse(fb *models.Feedback) gin.H {
	return gin.H{
		"id":               fb.ID,
		"baby_id":          fb.BabyID,
		"recipe_id":        fb.RecipeID,
		"rating":           fb.Rating,
		"accepted":         fb.Accepted,
		"prepared":         fb.Prepared,
		"baby_liked":       fb.BabyLiked,
		"comments":         fb.Comments,
		"rejection_reason": fb.RejectionReason,
		"recommended_at":   fb.RecommendedAt,
		"feedback_at":      fb.FeedbackAt,
		"feedback_score":   fb.Score(),
	}
}
