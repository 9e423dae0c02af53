package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogHandler holds the log service dependency.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseEntryPayload mirrors domain.ExerciseEntry on the wire. All fields
// except name are optional; absent fields stay nil.
type ExerciseEntryPayload struct {
	Name            string   `json:"name" binding:"omitempty"`
	Sets            *int     `json:"sets" binding:"omitempty,min=0"`
	Reps            *int     `json:"reps" binding:"omitempty,min=0"`
	Weight          *float64 `json:"weight" binding:"omitempty,min=0"`
	DurationMinutes *float64 `json:"durationMinutes" binding:"omitempty"`
	Duration        *float64 `json:"duration" binding:"omitempty"`
	DurationSeconds *float64 `json:"durationSeconds" binding:"omitempty"`
}

// LogRequest defines the expected JSON for creating or updating a workout log.
type LogRequest struct {
	WorkoutID       string                 `json:"workoutId" binding:"omitempty"` // hex ObjectID; empty for free-form sessions
	CompletedAt     *time.Time             `json:"completedAt" binding:"omitempty"`
	Exercises       []ExerciseEntryPayload `json:"exercises" binding:"omitempty,dive"`
	Notes           string                 `json:"notes" binding:"omitempty"`
	Rating          *int                   `json:"rating" binding:"omitempty"`
	RPE             *int                   `json:"rpe" binding:"omitempty"`
	DurationMinutes *int                   `json:"durationMinutes" binding:"omitempty"`
	CaloriesBurned  *int                   `json:"caloriesBurned" binding:"omitempty"`
	Tags            []string               `json:"tags" binding:"omitempty"`
}

// LogResponse is the DTO for returning workout log details.
type LogResponse struct {
	ID              string                 `json:"id"`
	WorkoutID       string                 `json:"workoutId,omitempty"`
	CompletedAt     *time.Time             `json:"completedAt,omitempty"`
	Exercises       []ExerciseEntryPayload `json:"exercises,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Rating          *int                   `json:"rating,omitempty"`
	RPE             *int                   `json:"rpe,omitempty"`
	DurationMinutes *int                   `json:"durationMinutes,omitempty"`
	CaloriesBurned  *int                   `json:"caloriesBurned,omitempty"`
	Tags            []string               `json:"tags,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func mapEntryToPayload(e domain.ExerciseEntry) ExerciseEntryPayload {
	return ExerciseEntryPayload{
		Name:            e.Name,
		Sets:            e.Sets,
		Reps:            e.Reps,
		Weight:          e.Weight,
		DurationMinutes: e.DurationMinutes,
		Duration:        e.Duration,
		DurationSeconds: e.DurationSeconds,
	}
}

func mapPayloadToEntry(p ExerciseEntryPayload) domain.ExerciseEntry {
	return domain.ExerciseEntry{
		Name:            p.Name,
		Sets:            p.Sets,
		Reps:            p.Reps,
		Weight:          p.Weight,
		DurationMinutes: p.DurationMinutes,
		Duration:        p.Duration,
		DurationSeconds: p.DurationSeconds,
	}
}

// MapLogToResponse converts a domain.WorkoutLog to LogResponse DTO.
func MapLogToResponse(l *domain.WorkoutLog) LogResponse {
	if l == nil {
		return LogResponse{}
	}
	var workoutID string
	if l.WorkoutID != nil {
		workoutID = l.WorkoutID.Hex()
	}
	var exercises []ExerciseEntryPayload
	if len(l.Exercises) > 0 {
		exercises = make([]ExerciseEntryPayload, len(l.Exercises))
		for i, e := range l.Exercises {
			exercises[i] = mapEntryToPayload(e)
		}
	}
	return LogResponse{
		ID:              l.ID.Hex(),
		WorkoutID:       workoutID,
		CompletedAt:     l.CompletedAt,
		Exercises:       exercises,
		Notes:           l.Notes,
		Rating:          l.Rating,
		RPE:             l.RPE,
		DurationMinutes: l.DurationMinutes,
		CaloriesBurned:  l.CaloriesBurned,
		Tags:            l.Tags,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// MapLogsToResponse converts a slice of domain.WorkoutLog to response DTOs.
func MapLogsToResponse(logs []domain.WorkoutLog) []LogResponse {
	responses := make([]LogResponse, len(logs))
	for i, l := range logs {
		responses[i] = MapLogToResponse(&l)
	}
	return responses
}

// buildLogInput translates the request DTO into a service.LogInput,
// parsing the optional workout reference.
func buildLogInput(req LogRequest) (service.LogInput, error) {
	input := service.LogInput{
		CompletedAt:     req.CompletedAt,
		Notes:           req.Notes,
		Rating:          req.Rating,
		RPE:             req.RPE,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Tags:            req.Tags,
	}
	if req.WorkoutID != "" {
		workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
		if err != nil {
			return service.LogInput{}, errors.New("invalid workout ID format")
		}
		input.WorkoutID = &workoutID
	}
	if len(req.Exercises) > 0 {
		input.Exercises = make([]domain.ExerciseEntry, len(req.Exercises))
		for i, p := range req.Exercises {
			input.Exercises[i] = mapPayloadToEntry(p)
		}
	}
	return input, nil
}

// --- Handler Methods ---

// CreateLog godoc
// @Summary Record a completed workout
// @Description Creates a workout log, either linked to a planned workout or free-form with ad-hoc exercise entries.
// @Tags Logs
// @Accept json
// @Produce json
// @Param log body LogRequest true "Log details"
// @Success 201 {object} LogResponse "Log created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /logs [post]
func (h *LogHandler) CreateLog(c *gin.Context) {
	var req LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	input, err := buildLogInput(req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	log, err := h.logService.CreateLog(c.Request.Context(), userID, input)
	if err != nil {
		handleLogServiceError(c, err, "Failed to create log.")
		return
	}

	c.JSON(http.StatusCreated, MapLogToResponse(log))
}

// GetLogs godoc
// @Summary List recent workout logs
// @Description Returns the most recent workout logs, newest first. The limit query parameter caps the result count (default 50).
// @Tags Logs
// @Produce json
// @Param limit query int false "Maximum number of logs to return" default(50)
// @Success 200 {array} LogResponse "List of logs"
// @Failure 400 {object} gin.H "Invalid limit"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /logs [get]
func (h *LogHandler) GetLogs(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer.")
			return
		}
		limit = parsed
	}

	logs, err := h.logService.GetRecentLogs(c.Request.Context(), userID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve logs.")
		return
	}

	if logs == nil {
		c.JSON(http.StatusOK, []LogResponse{})
		return
	}

	c.JSON(http.StatusOK, MapLogsToResponse(logs))
}

// GetLogByID godoc
// @Summary Get a single workout log
// @Tags Logs
// @Produce json
// @Param id path string true "Log ID"
// @Success 200 {object} LogResponse "Log details"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Log not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /logs/{id} [get]
func (h *LogHandler) GetLogByID(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	log, err := h.logService.GetLogByID(c.Request.Context(), userID, logID)
	if err != nil {
		handleLogServiceError(c, err, "Failed to retrieve log.")
		return
	}

	c.JSON(http.StatusOK, MapLogToResponse(log))
}

// UpdateLog godoc
// @Summary Update a workout log
// @Tags Logs
// @Accept json
// @Produce json
// @Param id path string true "Log ID"
// @Param log body LogRequest true "Updated log details"
// @Success 200 {object} LogResponse "Log updated successfully"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Log not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /logs/{id} [put]
func (h *LogHandler) UpdateLog(c *gin.Context) {
	var req LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	input, err := buildLogInput(req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	log, err := h.logService.UpdateLog(c.Request.Context(), userID, logID, input)
	if err != nil {
		handleLogServiceError(c, err, "Failed to update log.")
		return
	}

	c.JSON(http.StatusOK, MapLogToResponse(log))
}

// DeleteLog godoc
// @Summary Delete a workout log
// @Tags Logs
// @Param id path string true "Log ID"
// @Success 204 "Log deleted"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Log not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /logs/{id} [delete]
func (h *LogHandler) DeleteLog(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	if err := h.logService.DeleteLog(c.Request.Context(), userID, logID); err != nil {
		handleLogServiceError(c, err, "Failed to delete log.")
		return
	}

	c.Status(http.StatusNoContent)
}

// handleLogServiceError maps common log service errors to HTTP status codes.
func handleLogServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrLogNotFound):
		abortWithError(c, http.StatusNotFound, "Log not found.")
	case errors.Is(err, service.ErrLogAccessDenied):
		abortWithError(c, http.StatusForbidden, "Access to this log is denied.")
	case errors.Is(err, service.ErrLogValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusBadRequest, "Referenced workout not found.")
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
