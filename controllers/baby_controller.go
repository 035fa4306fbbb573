package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lareinaLY/baby-meal-recommendation/config"
	"github.com/lareinaLY/baby-meal-recommendation/models"
)

// currentUser resolves the authenticated user from the email claim set
// by the auth middleware. Writes the error response itself on failure.
func currentUser(c *gin.Context) (models.User, bool) {
	email := c.GetString("email")
	var u models.User
	if err := config.DB.First(&u, "email = ?", email).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return models.User{}, false
	}
	return u, true
}

type BabyInput struct {
	Name                string     `json:"name" binding:"required"`
	BirthDate           *time.Time `json:"birth_date" binding:"required"`
	WeightKg            float64    `json:"weight_kg"`
	HeightCm            float64    `json:"height_cm"`
	Allergies           []string   `json:"allergies"`
	LikedIngredients    []string   `json:"liked_ingredients"`
	DislikedIngredients []string   `json:"disliked_ingredients"`
}

func CreateBaby(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input BabyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.BirthDate == nil || input.BirthDate.IsZero() || input.BirthDate.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be a past date"})
		return
	}

	baby := models.Baby{
		UserID:              user.ID,
		Name:                input.Name,
		BirthDate:           *input.BirthDate,
		WeightKg:            input.WeightKg,
		HeightCm:            input.HeightCm,
		Allergies:           orEmpty(input.Allergies),
		LikedIngredients:    orEmpty(input.LikedIngredients),
		DislikedIngredients: orEmpty(input.DislikedIngredients),
		TriedIngredients:    map[string]models.IngredientAttempt{},
	}
	if err := config.DB.Create(&baby).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, babyResponse(&baby))
}

func ListBabies(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var babies []models.Baby
	if err := config.DB.Where("user_id = ?", user.ID).Find(&babies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(babies))
	for i := range babies {
		out = append(out, babyResponse(&babies[i]))
	}
	c.JSON(http.StatusOK, out)
}

func GetBaby(c *gin.Context) {
	baby, ok := ownedBaby(c)
	if !ok {
		return
	}

	var total, accepted int64
	config.DB.Model(&models.Feedback{}).Where("baby_id = ?", baby.ID).Count(&total)
	config.DB.Model(&models.Feedback{}).Where("baby_id = ? AND accepted = ?", baby.ID, true).Count(&accepted)

	resp := babyResponse(baby)
	resp["total_feedbacks"] = total
	acceptanceRate := 0.0
	if total > 0 {
		acceptanceRate = float64(accepted) / float64(total)
	}
	resp["acceptance_rate"] = acceptanceRate

	c.JSON(http.StatusOK, resp)
}

type BabyUpdate struct {
	Name                *string    `json:"name"`
	BirthDate           *time.Time `json:"birth_date"`
	WeightKg            *float64   `json:"weight_kg"`
	HeightCm            *float64   `json:"height_cm"`
	Allergies           *[]string  `json:"allergies"`
	LikedIngredients    *[]string  `json:"liked_ingredients"`
	DislikedIngredients *[]string  `json:"disliked_ingredients"`
}

func UpdateBaby(c *gin.Context) {
	baby, ok := ownedBaby(c)
	if !ok {
		return
	}

	var update BabyUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if update.Name != nil {
		baby.Name = *update.Name
	}
	if update.BirthDate != nil {
		if update.BirthDate.IsZero() || update.BirthDate.After(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be a past date"})
			return
		}
		baby.BirthDate = *update.BirthDate
	}
	if update.WeightKg != nil {
		baby.WeightKg = *update.WeightKg
	}
	if update.HeightCm != nil {
		baby.HeightCm = *update.HeightCm
	}
	if update.Allergies != nil {
		baby.Allergies = orEmpty(*update.Allergies)
	}
	if update.LikedIngredients != nil {
		baby.LikedIngredients = orEmpty(*update.LikedIngredients)
	}
	if update.DislikedIngredients != nil {
		// Removing an ingredient here retires its retry tracking.
		baby.DislikedIngredients = orEmpty(*update.DislikedIngredients)
		pruneRetired(baby)
	}

	if err := config.DB.Save(baby).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, babyResponse(baby))
}

func DeleteBaby(c *gin.Context) {
	baby, ok := ownedBaby(c)
	if !ok {
		return
	}

	if err := config.DB.Select("Feedbacks").Delete(baby).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ownedBaby loads the :id baby and enforces that it belongs to the
// authenticated user. Writes the error response itself on failure.
func ownedBaby(c *gin.Context) (*models.Baby, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	var baby models.Baby
	if err := config.DB.First(&baby, "id = ? AND user_id = ?", c.Param("id"), user.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "baby not found"})
		return nil, false
	}
	return &baby, true
}

// ownedBabyByID is ownedBaby for handlers that carry the baby id in
// the request body or a differently named param.
func ownedBabyByID(c *gin.Context, id uint) (*models.Baby, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	var baby models.Baby
	if err := config.DB.First(&baby, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "baby not found"})
		return nil, false
	}
	return &baby, true
}

func babyResponse(baby *models.Baby) gin.H {
	now := time.Now()
	return gin.H{
		"id":                   baby.ID,
		"name":                 baby.Name,
		"birth_date":           baby.BirthDate,
		"weight_kg":            baby.WeightKg,
		"height_cm":            baby.HeightCm,
		"allergies":            baby.Allergies,
		"liked_ingredients":    baby.LikedIngredients,
		"disliked_ingredients": baby.DislikedIngredients,
		"tried_ingredients":    baby.TriedIngredients,
		"age_months":           baby.AgeMonths(now),
		"age_stage":            baby.AgeStage(now),
	}
}

func pruneRetired(baby *models.Baby) {
	if baby.TriedIngredients == nil {
		return
	}
	still := make(map[string]bool, len(baby.DislikedIngredients))
	for _, d := range baby.DislikedIngredients {
		still[d] = true
	}
	for ingredient := range baby.TriedIngredients {
		if !still[ingredient] {
			delete(baby.TriedIngredients, ingredient)
		}
	}
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
