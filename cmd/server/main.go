package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/rafkix/cefr-exam-service/internal/cache"
	"github.com/rafkix/cefr-exam-service/internal/config"
	"github.com/rafkix/cefr-exam-service/internal/handlers"
	"github.com/rafkix/cefr-exam-service/internal/models"
	"github.com/rafkix/cefr-exam-service/internal/repositories/postgres"
	"github.com/rafkix/cefr-exam-service/internal/services"
	"github.com/rafkix/cefr-exam-service/internal/session"
	"github.com/rafkix/cefr-exam-service/internal/utils"
	"github.com/rafkix/cefr-exam-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	logger.Info("Starting cefr-exam-service", "environment", cfg.Environment, "port", cfg.Port)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return
	}
	if err := db.AutoMigrate(
		&models.Exam{},
		&models.ExamPart{},
		&models.Question{},
		&models.WritingTask{},
		&models.Attempt{},
		&models.Result{},
	); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		return
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		return
	}
	defer redisClient.Close()
	cacheSvc := cache.NewRedisCache(redisClient, logger)

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		return
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	sessions := session.NewStore()
	validator := utils.NewValidator()

	manager := services.NewManager(repo, sessions, cacheSvc, publisher, logger, validator)
	handlerManager := handlers.NewHandlerManager(manager, validator, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.RequestLogger(logger))

	handlerManager.SetupRoutes(router)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
	}
}
