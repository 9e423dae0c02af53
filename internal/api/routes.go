package api

import (
	"net/http"

	"okoval/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	equipmentService service.EquipmentService,
	planService service.PlanService,
	logService service.LogService,
	progressService service.ProgressService,
) {
	equipmentHandler := NewEquipmentHandler(equipmentService)
	planHandler := NewPlanHandler(planService)
	logHandler := NewLogHandler(logService)
	progressHandler := NewProgressHandler(progressService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(IdentityMiddleware())
	{
		// --- Equipment Catalog ---
		equipmentGroup := apiV1.Group("/equipment")
		{
			equipmentGroup.POST("", equipmentHandler.CreateEquipment)
			equipmentGroup.GET("", equipmentHandler.GetEquipment)
			equipmentGroup.GET("/:id", equipmentHandler.GetEquipmentByID)
			equipmentGroup.PUT("/:id", equipmentHandler.UpdateEquipment)
			equipmentGroup.DELETE("/:id", equipmentHandler.DeleteEquipment)

			// Photos go straight to object storage via presigned URLs;
			// the API only brokers the keys.
			equipmentGroup.POST("/:id/photo/upload-url", equipmentHandler.RequestPhotoUpload)
			equipmentGroup.POST("/:id/photo/confirm", equipmentHandler.ConfirmPhotoUpload)
			equipmentGroup.GET("/:id/photo/download-url", equipmentHandler.GetPhotoDownloadURL)
		}

		// --- Workout Plans ---
		planGroup := apiV1.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.GET("", planHandler.GetPlans)
			planGroup.GET("/:id", planHandler.GetPlanByID)
			planGroup.PUT("/:id", planHandler.UpdatePlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
			planGroup.GET("/:id/workouts", planHandler.GetWorkoutsForPlan)
		}

		apiV1.GET("/workouts/:id", planHandler.GetWorkoutByID)

		// --- Workout Logs ---
		logGroup := apiV1.Group("/logs")
		{
			logGroup.POST("", logHandler.CreateLog)
			logGroup.GET("", logHandler.GetLogs)
			logGroup.GET("/:id", logHandler.GetLogByID)
			logGroup.PUT("/:id", logHandler.UpdateLog)
			logGroup.DELETE("/:id", logHandler.DeleteLog)
		}

		// --- Progress Report ---
		apiV1.GET("/progress", progressHandler.GetProgress)
	}
}
