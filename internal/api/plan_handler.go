package api

import (
	"errors"
	"net/http"
	"time"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs for API (Data Transfer Objects) ---

// NutritionPayload mirrors domain.Nutrition on the wire.
type NutritionPayload struct {
	DailyCalories int      `json:"dailyCalories" binding:"omitempty,min=0"`
	ProteinGrams  int      `json:"proteinGrams" binding:"omitempty,min=0"`
	CarbsGrams    int      `json:"carbsGrams" binding:"omitempty,min=0"`
	FatGrams      int      `json:"fatGrams" binding:"omitempty,min=0"`
	Tips          []string `json:"tips" binding:"omitempty"`
}

// PlanRequest defines the expected JSON for creating or updating a plan manually.
type PlanRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description" binding:"omitempty"`
	Goal        string            `json:"goal" binding:"omitempty"`
	DaysPerWeek int               `json:"daysPerWeek" binding:"omitempty,min=1,max=7"`
	Nutrition   *NutritionPayload `json:"nutrition" binding:"omitempty"`
	IsActive    bool              `json:"isActive"`
}

// GeneratePlanRequest defines the expected JSON for AI plan generation.
type GeneratePlanRequest struct {
	Goal            string `json:"goal" binding:"required"`                       // e.g., "strength", "fat loss"
	ExperienceLevel string `json:"experienceLevel" binding:"omitempty"`           // e.g., "beginner"
	DaysPerWeek     int    `json:"daysPerWeek" binding:"required,min=1,max=7"`
	SessionMinutes  int    `json:"sessionMinutes" binding:"omitempty,min=10,max=240"`
}

// PlanResponse is the DTO for returning plan details.
type PlanResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Goal        string            `json:"goal,omitempty"`
	DaysPerWeek int               `json:"daysPerWeek,omitempty"`
	Nutrition   *NutritionPayload `json:"nutrition,omitempty"`
	Source      string            `json:"source"`
	IsActive    bool              `json:"isActive"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// PlannedExerciseResponse is the DTO for a prescribed exercise within a workout.
type PlannedExerciseResponse struct {
	Name            string `json:"name"`
	Sets            int    `json:"sets,omitempty"`
	Reps            int    `json:"reps,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
	RestSeconds     int    `json:"restSeconds,omitempty"`
	Equipment       string `json:"equipment,omitempty"`
}

// WorkoutResponse is the DTO for returning a workout session definition.
type WorkoutResponse struct {
	ID                string                    `json:"id"`
	PlanID            string                    `json:"planId"`
	Name              string                    `json:"name"`
	DayOfWeek         *int                      `json:"dayOfWeek,omitempty"`
	Focus             string                    `json:"focus,omitempty"`
	EstimatedDuration int                       `json:"estimatedDuration,omitempty"`
	Exercises         []PlannedExerciseResponse `json:"exercises,omitempty"`
	Sequence          int                       `json:"sequence"`
	CreatedAt         time.Time                 `json:"createdAt"`
	UpdatedAt         time.Time                 `json:"updatedAt"`
}

// GeneratedPlanResponse bundles a freshly generated plan with its workouts.
type GeneratedPlanResponse struct {
	Plan     PlanResponse      `json:"plan"`
	Workouts []WorkoutResponse `json:"workouts"`
}

func mapNutritionToPayload(n *domain.Nutrition) *NutritionPayload {
	if n == nil {
		return nil
	}
	return &NutritionPayload{
		DailyCalories: n.DailyCalories,
		ProteinGrams:  n.ProteinGrams,
		CarbsGrams:    n.CarbsGrams,
		FatGrams:      n.FatGrams,
		Tips:          n.Tips,
	}
}

func mapPayloadToNutrition(p *NutritionPayload) *domain.Nutrition {
	if p == nil {
		return nil
	}
	return &domain.Nutrition{
		DailyCalories: p.DailyCalories,
		ProteinGrams:  p.ProteinGrams,
		CarbsGrams:    p.CarbsGrams,
		FatGrams:      p.FatGrams,
		Tips:          p.Tips,
	}
}

// MapPlanToResponse converts a domain.WorkoutPlan to PlanResponse DTO.
func MapPlanToResponse(plan *domain.WorkoutPlan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:          plan.ID.Hex(),
		Name:        plan.Name,
		Description: plan.Description,
		Goal:        plan.Goal,
		DaysPerWeek: plan.DaysPerWeek,
		Nutrition:   mapNutritionToPayload(plan.Nutrition),
		Source:      string(plan.Source),
		IsActive:    plan.IsActive,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}

// MapPlansToResponse converts a slice of domain.WorkoutPlan to response DTOs.
func MapPlansToResponse(plans []domain.WorkoutPlan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i, p := range plans {
		responses[i] = MapPlanToResponse(&p)
	}
	return responses
}

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	exercises := make([]PlannedExerciseResponse, len(w.Exercises))
	for i, ex := range w.Exercises {
		exercises[i] = PlannedExerciseResponse{
			Name:            ex.Name,
			Sets:            ex.Sets,
			Reps:            ex.Reps,
			DurationSeconds: ex.DurationSeconds,
			RestSeconds:     ex.RestSeconds,
			Equipment:       ex.Equipment,
		}
	}
	return WorkoutResponse{
		ID:                w.ID.Hex(),
		PlanID:            w.PlanID.Hex(),
		Name:              w.Name,
		DayOfWeek:         w.DayOfWeek,
		Focus:             w.Focus,
		EstimatedDuration: w.EstimatedDuration,
		Exercises:         exercises,
		Sequence:          w.Sequence,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
}

// MapWorkoutsToResponse converts a slice of domain.Workout to response DTOs.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i, w := range workouts {
		responses[i] = MapWorkoutToResponse(&w)
	}
	return responses
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Create a workout plan manually
// @Tags Plans
// @Accept json
// @Produce json
// @Param plan body PlanRequest true "Plan details"
// @Success 201 {object} PlanResponse "Plan created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, service.PlanInput{
		Name:        req.Name,
		Description: req.Description,
		Goal:        req.Goal,
		DaysPerWeek: req.DaysPerWeek,
		Nutrition:   mapPayloadToNutrition(req.Nutrition),
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrPlanValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// GeneratePlan godoc
// @Summary Generate a workout plan with the AI collaborator
// @Description Calls the configured chat-completion endpoint to produce a full plan with workouts and nutrition guidance, grounded on the user's equipment catalog, then persists it.
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body GeneratePlanRequest true "Generation parameters"
// @Success 201 {object} GeneratedPlanResponse "Generated plan with workouts"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 502 {object} gin.H "Plan generation failed"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	plan, workouts, err := h.planService.GeneratePlan(c.Request.Context(), userID, service.GeneratePlanInput{
		Goal:            req.Goal,
		ExperienceLevel: req.ExperienceLevel,
		DaysPerWeek:     req.DaysPerWeek,
		SessionMinutes:  req.SessionMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanGenerationFailed):
			abortWithError(c, http.StatusBadGateway, "Plan generation failed. Please try again.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plan.")
		}
		return
	}

	c.JSON(http.StatusCreated, GeneratedPlanResponse{
		Plan:     MapPlanToResponse(plan),
		Workouts: MapWorkoutsToResponse(workouts),
	})
}

// GetPlans godoc
// @Summary List workout plans
// @Tags Plans
// @Produce json
// @Success 200 {array} PlanResponse "List of plans"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans [get]
func (h *PlanHandler) GetPlans(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	plans, err := h.planService.GetPlansByUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}

	if plans == nil {
		c.JSON(http.StatusOK, []PlanResponse{})
		return
	}

	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

// GetPlanByID godoc
// @Summary Get a single workout plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} PlanResponse "Plan details"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlanByID(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	plan, err := h.planService.GetPlanByID(c.Request.Context(), userID, planID)
	if err != nil {
		handlePlanServiceError(c, err, "Failed to retrieve plan.")
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// UpdatePlan godoc
// @Summary Update a workout plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param plan body PlanRequest true "Updated plan details"
// @Success 200 {object} PlanResponse "Plan updated successfully"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/{id} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), userID, planID, service.PlanInput{
		Name:        req.Name,
		Description: req.Description,
		Goal:        req.Goal,
		DaysPerWeek: req.DaysPerWeek,
		Nutrition:   mapPayloadToNutrition(req.Nutrition),
		IsActive:    req.IsActive,
	})
	if err != nil {
		handlePlanServiceError(c, err, "Failed to update plan.")
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan godoc
// @Summary Delete a workout plan
// @Description Deletes the plan and all workouts belonging to it.
// @Tags Plans
// @Param id path string true "Plan ID"
// @Success 204 "Plan deleted"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		handlePlanServiceError(c, err, "Failed to delete plan.")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetWorkoutsForPlan godoc
// @Summary List workouts for a plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {array} WorkoutResponse "Workouts in plan order"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/{id}/workouts [get]
func (h *PlanHandler) GetWorkoutsForPlan(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	workouts, err := h.planService.GetWorkoutsForPlan(c.Request.Context(), userID, planID)
	if err != nil {
		handlePlanServiceError(c, err, "Failed to retrieve workouts.")
		return
	}

	if workouts == nil {
		c.JSON(http.StatusOK, []WorkoutResponse{})
		return
	}

	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// GetWorkoutByID godoc
// @Summary Get a single workout session definition
// @Tags Plans
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} WorkoutResponse "Workout details"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{id} [get]
func (h *PlanHandler) GetWorkoutByID(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	workout, err := h.planService.GetWorkoutByID(c.Request.Context(), userID, workoutID)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout not found.")
			return
		}
		handlePlanServiceError(c, err, "Failed to retrieve workout.")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// handlePlanServiceError maps common plan service errors to HTTP status codes.
func handlePlanServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, "Plan not found.")
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, "Access to this plan is denied.")
	case errors.Is(err, service.ErrPlanValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
