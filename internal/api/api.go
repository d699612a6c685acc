// backend-go/internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pantryplan/backend-go/internal/api/handlers"
	"github.com/pantryplan/backend-go/internal/api/middleware"
	"github.com/pantryplan/backend-go/internal/service"
)

type Services struct {
	Auth          *service.AuthService
	Inventory     *service.InventoryService
	Shopping      *service.ShoppingService
	Recipes       *service.RecipeService
	Meals         *service.MealLogService
	Goals         *service.GoalService
	Streaks       *service.StreakService
	Challenges    *service.ChallengeService
	Achievements  *service.AchievementService
	Dashboard     *service.DashboardService
	Notifications *service.NotificationService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if services == nil {
		return router
	}

	if services.Auth != nil {
		authHandler := handlers.NewAuthHandler(services.Auth)
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	// Everything below requires a valid bearer token.
	protected := apiGroup.Group("")
	if services.Auth != nil {
		protected.Use(middleware.RequireAuth(services.Auth))
	}

	if services.Inventory != nil {
		inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
		inventoryGroup := protected.Group("/inventory")
		{
			inventoryGroup.GET("", inventoryHandler.List)
			inventoryGroup.POST("", inventoryHandler.Create)
			inventoryGroup.GET("/summary", inventoryHandler.Summary)
			inventoryGroup.GET("/expiring", inventoryHandler.Expiring)
			inventoryGroup.PUT("/:id", inventoryHandler.Update)
			inventoryGroup.DELETE("/:id", inventoryHandler.Delete)
		}
	}

	if services.Shopping != nil {
		shoppingHandler := handlers.NewShoppingHandler(services.Shopping)
		shoppingGroup := protected.Group("/shopping-lists")
		{
			shoppingGroup.GET("", shoppingHandler.List)
			shoppingGroup.POST("", shoppingHandler.Create)
			shoppingGroup.GET("/:id", shoppingHandler.Get)
			shoppingGroup.PUT("/:id", shoppingHandler.Rename)
			shoppingGroup.DELETE("/:id", shoppingHandler.Delete)
			shoppingGroup.POST("/:id/items", shoppingHandler.AddItem)
			shoppingGroup.PUT("/:id/items/:itemID", shoppingHandler.UpdateItem)
			shoppingGroup.DELETE("/:id/items/:itemID", shoppingHandler.DeleteItem)
			shoppingGroup.POST("/:id/items/:itemID/toggle", shoppingHandler.ToggleItem)
		}
	}

	if services.Recipes != nil {
		recipeHandler := handlers.NewRecipeHandler(services.Recipes)
		recipeGroup := protected.Group("/recipes")
		{
			recipeGroup.GET("", recipeHandler.List)
			recipeGroup.POST("", recipeHandler.Create)
			recipeGroup.GET("/:id", recipeHandler.Get)
			recipeGroup.PUT("/:id", recipeHandler.Update)
			recipeGroup.DELETE("/:id", recipeHandler.Delete)
			recipeGroup.POST("/:id/image", recipeHandler.UploadImage)
		}
	}

	if services.Meals != nil {
		mealHandler := handlers.NewMealHandler(services.Meals)
		mealGroup := protected.Group("/meals")
		{
			mealGroup.GET("", mealHandler.List)
			mealGroup.POST("", mealHandler.Create)
			mealGroup.DELETE("/:id", mealHandler.Delete)
		}
	}

	if services.Goals != nil {
		goalHandler := handlers.NewGoalHandler(services.Goals)
		goalGroup := protected.Group("/goals")
		{
			goalGroup.GET("", goalHandler.Get)
			goalGroup.PUT("", goalHandler.Upsert)
			goalGroup.GET("/progress", goalHandler.Progress)
		}
	}

	if services.Streaks != nil && services.Challenges != nil && services.Achievements != nil {
		gamificationHandler := handlers.NewGamificationHandler(services.Streaks, services.Challenges, services.Achievements)
		protected.GET("/streaks", gamificationHandler.Streaks)
		challengeGroup := protected.Group("/challenges")
		{
			challengeGroup.GET("", gamificationHandler.Challenges)
			challengeGroup.GET("/mine", gamificationHandler.MyChallenges)
			challengeGroup.POST("/:id/join", gamificationHandler.JoinChallenge)
		}
		protected.GET("/achievements", gamificationHandler.Achievements)
	}

	if services.Dashboard != nil {
		dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
		protected.GET("/dashboard", dashboardHandler.Get)
	}

	if services.Notifications != nil {
		notificationHandler := handlers.NewNotificationHandler(services.Notifications)
		notificationGroup := protected.Group("/notifications")
		{
			notificationGroup.GET("", notificationHandler.List)
			notificationGroup.POST("/:id/read", notificationHandler.MarkRead)
			notificationGroup.POST("/read-all", notificationHandler.MarkAllRead)
		}
		protected.POST("/devices", notificationHandler.RegisterDevice)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
