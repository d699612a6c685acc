// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/backend-go/internal/api"
	"github.com/pantryplan/backend-go/internal/cache"
	"github.com/pantryplan/backend-go/internal/config"
	"github.com/pantryplan/backend-go/internal/repository/postgres"
	"github.com/pantryplan/backend-go/internal/service"
	"github.com/pantryplan/backend-go/internal/storage"
	"github.com/pantryplan/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	users := postgres.NewUserRepository(db)
	inventory := postgres.NewInventoryRepository(db)
	recipes := postgres.NewRecipeRepository(db)
	meals := postgres.NewMealLogRepository(db)
	goals := postgres.NewNutrientGoalRepository(db)
	shopping := postgres.NewShoppingListRepository(db)
	streaks := postgres.NewStreakRepository(db)
	challenges := postgres.NewChallengeRepository(db)
	achievements := postgres.NewAchievementRepository(db)
	notifications := postgres.NewNotificationRepository(db)
	devices := postgres.NewDeviceRepository(db)

	// Dashboard cache is optional; a failed redis connection downgrades to
	// the noop cache so the server still boots.
	dashCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("dashboard cache unavailable, continuing without caching")
		dashCache = cache.NewNoopDashboardCache()
	}

	// Object storage is optional the same way: without credentials recipe
	// images are rejected but every other route works.
	var objectStorage storage.ObjectStorage = storage.Disabled{}
	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		objectStorage = client
	}

	// Initialize services
	inventoryService := service.NewInventoryService(inventory, dashCache)
	recipeService := service.NewRecipeService(recipes, objectStorage)
	mealService := service.NewMealLogService(meals, recipes, dashCache)
	goalService := service.NewGoalService(goals, meals)
	shoppingService := service.NewShoppingService(shopping, dashCache)
	streakService := service.NewStreakService(meals, goals, streaks)
	challengeService := service.NewChallengeService(challenges, meals, goals, achievements, notifications)
	achievementService := service.NewAchievementService(achievements, notifications, meals, goals)
	notificationService := service.NewNotificationService(notifications, devices, inventory)
	dashboardService := service.NewDashboardService(
		inventoryService, streakService, challengeService, goalService, notificationService, dashCache)
	authService := service.NewAuthService(users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Auth:          authService,
		Inventory:     inventoryService,
		Shopping:      shoppingService,
		Recipes:       recipeService,
		Meals:         mealService,
		Goals:         goalService,
		Streaks:       streakService,
		Challenges:    challengeService,
		Achievements:  achievementService,
		Dashboard:     dashboardService,
		Notifications: notificationService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
