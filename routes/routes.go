package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lareinaLY/baby-meal-recommendation/config"
	"github.com/lareinaLY/baby-meal-recommendation/controllers"
	"github.com/lareinaLY/baby-meal-recommendation/middlewares"
)

func SetupRouter(cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/auth/me", controllers.Me)

		babies := protected.Group("/babies")
		{
			babies.POST("", controllers.CreateBaby)
			babies.GET("", controllers.ListBabies)
			babies.GET("/:id", controllers.GetBaby)
			babies.PATCH("/:id", controllers.UpdateBaby)
			babies.DELETE("/:id", controllers.DeleteBaby)
		}

		recipes := protected.Group("/recipes")
		{
			recipes.POST("", controllers.CreateRecipe)
			recipes.GET("", controllers.ListRecipes)
			recipes.GET("/:id", controllers.GetRecipe)
			recipes.PATCH("/:id", controllers.UpdateRecipe)
			recipes.DELETE("/:id", controllers.DeleteRecipe)
		}

		rec := controllers.NewRecommendationController(cfg)
		recommendations := protected.Group("/recommendations")
		{
			recommendations.POST("", rec.Recommend)
			recommendations.POST("/smart", rec.RecommendSmart)
			recommendations.POST("/feedback", controllers.SubmitFeedback)
			recommendations.GET("/feedback/:babyId", controllers.ListBabyFeedback)
			recommendations.PATCH("/feedback/:id", controllers.UpdateFeedback)
			recommendations.DELETE("/feedback/:id", controllers.DeleteFeedback)
		}

		pref := controllers.NewPreferenceController(cfg)
		preferences := protected.Group("/preferences")
		{
			preferences.POST("/dislike", pref.HandleDislike)
			preferences.GET("/retry/:babyId", pref.ShouldRetry)
			preferences.GET("/preparations/:babyId", pref.Preparations)
		}
	}

	return r
}
