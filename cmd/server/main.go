package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"okoval/fitness-planner/internal/ai"
	"okoval/fitness-planner/internal/api"
	"okoval/fitness-planner/internal/config"
	"okoval/fitness-planner/internal/repository/mongo"
	"okoval/fitness-planner/internal/service"
	"okoval/fitness-planner/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// @title Fitness Planner API
// @version 1.0
// @description API for managing an equipment catalog, AI-generated workout plans, workout logs and progress reports.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	log.Info("Starting Fitness Planner Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("Could not load config")
	}
	log.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to MongoDB")
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureEquipmentIndexes(ctx, appDB.Collection("equipment"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("workout_plans"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureLogIndexes(ctx, appDB.Collection("workout_logs"))
		log.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Info("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize S3 storage")
	}

	// --- Initialize Repositories ---
	log.Info("Initializing repositories...")
	equipmentRepo := mongo.NewMongoEquipmentRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	logRepo := mongo.NewMongoLogRepository(appDB)

	// --- Initialize AI Collaborator ---
	planGenerator := ai.NewClient(cfg.AI, nil)

	// --- Initialize Services ---
	log.Info("Initializing services...")
	equipmentService := service.NewEquipmentService(equipmentRepo, fileStorage)
	planService := service.NewPlanService(planRepo, workoutRepo, equipmentRepo, planGenerator)
	logService := service.NewLogService(logRepo, workoutRepo)
	progressService := service.NewProgressService(logRepo, workoutRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Info("Setting up API routes...")
	api.SetupRoutes(router, equipmentService, planService, logService, progressService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Infof("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exiting.")
}
