package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lareinaLY/baby-meal-recommendation/config"
	"github.com/lareinaLY/baby-meal-recommendation/models"
)

type RecipeInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	AgeMinMonths int  `json:"age_min_months" binding:"required,gte=0"`
	AgeMaxMonths *int `json:"age_max_months"`

	PreparationTimeMin int    `json:"preparation_time_min"`
	DifficultyLevel    string `json:"difficulty_level" binding:"omitempty,oneof=easy medium hard"`

	Ingredients  []models.Ingredient `json:"ingredients" binding:"required,min=1"`
	Instructions string              `json:"instructions"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`

	IronMg      float64 `json:"iron_mg"`
	CalciumMg   float64 `json:"calcium_mg"`
	VitaminAMcg float64 `json:"vitamin_a_mcg"`
	VitaminCMg  float64 `json:"vitamin_c_mg"`
	VitaminDMcg float64 `json:"vitamin_d_mcg"`

	MealType  string   `json:"meal_type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Cuisine   string   `json:"cuisine"`
	Tags      []string `json:"tags"`
	Allergens []string `json:"allergens"`

	ServingSizeG float64 `json:"serving_size_g"`
}

func CreateRecipe(c *gin.Context) {
	var input RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.AgeMaxMonths != nil && *input.AgeMaxMonths < input.AgeMinMonths {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age_max_months must be >= age_min_months"})
		return
	}

	recipe := recipeFromInput(&input)
	if err := config.DB.Create(recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, recipeResponse(recipe))
}

func ListRecipes(c *gin.Context) {
	q := config.DB.Model(&models.Recipe{})

	if mealType := c.Query("meal_type"); mealType != "" {
		q = q.Where("meal_type = ?", mealType)
	}
	if maxAge := c.Query("max_age"); maxAge != "" {
		if age, err := strconv.Atoi(maxAge); err == nil {
			q = q.Where("age_min_months <= ?", age)
		}
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	var recipes []models.Recipe
	if err := q.Offset(skip).Limit(limit).Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// tag filtering happens after load; tags live in a JSON column
	if tag := c.Query("tag"); tag != "" {
		filtered := recipes[:0]
		for _, r := range recipes {
			for _, t := range r.Tags {
				if t == tag {
					filtered = append(filtered, r)
					break
				}
			}
		}
		recipes = filtered
	}

	out := make([]gin.H, 0, len(recipes))
	for i := range recipes {
		out = append(out, recipeResponse(&recipes[i]))
	}
	c.JSON(http.StatusOK, out)
}

func GetRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := config.DB.First(&recipe, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipeResponse(&recipe))
}

func UpdateRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := config.DB.First(&recipe, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	var input RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.AgeMaxMonths != nil && *input.AgeMaxMonths < input.AgeMinMonths {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age_max_months must be >= age_min_months"})
		return
	}

	updated := recipeFromInput(&input)
	updated.ID = recipe.ID
	updated.CreatedAt = recipe.CreatedAt
	if err := config.DB.Save(updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipeResponse(updated))
}

func DeleteRecipe(c *gin.Context) {
	result := config.DB.Delete(&models.Recipe{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func recipeFromInput(input *RecipeInput) *models.Recipe {
	servingSize := input.ServingSizeG
	if servingSize == 0 {
		servingSize = 100
	}
	return &models.Recipe{
		Name:               input.Name,
		Description:        input.Description,
		AgeMinMonths:       input.AgeMinMonths,
		AgeMaxMonths:       input.AgeMaxMonths,
		PreparationTimeMin: input.PreparationTimeMin,
		DifficultyLevel:    input.DifficultyLevel,
		Ingredients:        input.Ingredients,
		Instructions:       input.Instructions,
		Calories:           input.Calories,
		ProteinG:           input.ProteinG,
		CarbsG:             input.CarbsG,
		FatG:               input.FatG,
		FiberG:             input.FiberG,
		SugarG:             input.SugarG,
		IronMg:             input.IronMg,
		CalciumMg:          input.CalciumMg,
		VitaminAMcg:        input.VitaminAMcg,
		VitaminCMg:         input.VitaminCMg,
		VitaminDMcg:        input.VitaminDMcg,
		MealType:           input.MealType,
		Cuisine:            input.Cuisine,
		Tags:               orEmpty(input.Tags),
		Allergens:          orEmpty(input.Allergens),
		ServingSizeG:       servingSize,
	}
}

func recipeResponse(recipe *models.Recipe) gin.H {
	return gin.H{
		"id":                   recipe.ID,
		"name":                 recipe.Name,
		"description":          recipe.Description,
		"age_min_months":       recipe.AgeMinMonths,
		"age_max_months":       recipe.AgeMaxMonths,
		"preparation_time_min": recipe.PreparationTimeMin,
		"difficulty_level":     recipe.DifficultyLevel,
		"ingredients":          recipe.Ingredients,
		"instructions":         recipe.Instructions,
		"calories":             recipe.Calories,
		"protein_g":            recipe.ProteinG,
		"carbs_g":              recipe.CarbsG,
		"fat_g":                recipe.FatG,
		"fiber_g":              recipe.FiberG,
		"sugar_g":              recipe.SugarG,
		"iron_mg":              recipe.IronMg,
		"calcium_mg":           recipe.CalciumMg,
		"vitamin_a_mcg":        recipe.VitaminAMcg,
		"vitamin_c_mg":         recipe.VitaminCMg,
		"vitamin_d_mcg":        recipe.VitaminDMcg,
		"meal_type":            recipe.MealType,
		"cuisine":              recipe.Cuisine,
		"tags":                 recipe.Tags,
		"allergens":            recipe.Allergens,
		"serving_size_g":       recipe.ServingSizeG,
		"nutrition_score":      recipe.NutritionScore(),
	}
}
