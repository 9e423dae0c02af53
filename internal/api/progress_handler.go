package api

import (
	"errors"
	"net/http"
	"strconv"

	"okoval/fitness-planner/internal/progress"
	"okoval/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// DefaultProgressWindowDays is the window used when the days query
// parameter is absent.
const DefaultProgressWindowDays = 30

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetProgress godoc
// @Summary Get the progress report
// @Description Computes streaks, the daily activity series, weekly rollups, tag breakdown and derived totals over the trailing window.
// @Tags Progress
// @Produce json
// @Param days query int false "Window size in days (1-31)" default(30)
// @Success 200 {object} progress.Report "Progress report"
// @Failure 400 {object} gin.H "Invalid days parameter"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	windowDays := DefaultProgressWindowDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "days must be an integer.")
			return
		}
		windowDays = parsed
	}
	if windowDays < service.MinWindowDays || windowDays > service.MaxWindowDays {
		abortWithError(c, http.StatusBadRequest, "days must be between 1 and 31.")
		return
	}

	report, err := h.progressService.GetProgressReport(c.Request.Context(), userID, windowDays)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWindow) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to compute progress report.")
		return
	}

	// The engine emits weekly summaries oldest first; the API presents the
	// most recent week on top.
	report.Weeks = reverseWeeks(report.Weeks)

	c.JSON(http.StatusOK, report)
}

func reverseWeeks(weeks []progress.WeeklySummary) []progress.WeeklySummary {
	if len(weeks) < 2 {
		return weeks
	}
	out := make([]progress.WeeklySummary, len(weeks))
	for i, w := range weeks {
		out[len(weeks)-1-i] = w
	}
	return out
}
