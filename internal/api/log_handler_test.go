package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeLogService struct {
	createdInput service.LogInput
	created      *domain.WorkoutLog
	createErr    error

	recentLogs []domain.WorkoutLog
	gotLimit   int
}

func (f *fakeLogService) CreateLog(_ context.Context, userID primitive.ObjectID, input service.LogInput) (*domain.WorkoutLog, error) {
	f.createdInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		return f.created, nil
	}
	created := &domain.WorkoutLog{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		WorkoutID:       input.WorkoutID,
		CompletedAt:     input.CompletedAt,
		Exercises:       input.Exercises,
		Notes:           input.Notes,
		Rating:          input.Rating,
		RPE:             input.RPE,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  input.CaloriesBurned,
		Tags:            input.Tags,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	return created, nil
}

func (f *fakeLogService) GetLogByID(_ context.Context, _, _ primitive.ObjectID) (*domain.WorkoutLog, error) {
	return nil, service.ErrLogNotFound
}

func (f *fakeLogService) GetRecentLogs(_ context.Context, _ primitive.ObjectID, limit int) ([]domain.WorkoutLog, error) {
	f.gotLimit = limit
	return f.recentLogs, nil
}

func (f *fakeLogService) UpdateLog(_ context.Context, _, _ primitive.ObjectID, _ service.LogInput) (*domain.WorkoutLog, error) {
	return nil, service.ErrLogNotFound
}

func (f *fakeLogService) DeleteLog(_ context.Context, _, _ primitive.ObjectID) error {
	return service.ErrLogNotFound
}

func newLogTestRouter(svc service.LogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewLogHandler(svc)
	group := router.Group("/api/v1", IdentityMiddleware())
	group.POST("/logs", handler.CreateLog)
	group.GET("/logs", handler.GetLogs)
	group.GET("/logs/:id", handler.GetLogByID)
	return router
}

func TestLogHandler_CreateLog(t *testing.T) {
	fake := &fakeLogService{}
	router := newLogTestRouter(fake)

	workoutID := primitive.NewObjectID()
	body, err := json.Marshal(LogRequest{
		WorkoutID:       workoutID.Hex(),
		Notes:           "solid session",
		Rating:          intPtr(5),
		RPE:             intPtr(7),
		DurationMinutes: intPtr(50),
		Tags:            []string{"push"},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/logs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, fake.createdInput.WorkoutID)
	assert.Equal(t, workoutID, *fake.createdInput.WorkoutID)
	assert.Equal(t, "solid session", fake.createdInput.Notes)

	var resp LogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, workoutID.Hex(), resp.WorkoutID)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, 5, *resp.Rating)
	assert.Equal(t, []string{"push"}, resp.Tags)
}

func TestLogHandler_CreateLog_RejectsBadWorkoutID(t *testing.T) {
	fake := &fakeLogService{}
	router := newLogTestRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/logs", bytes.NewReader([]byte(`{"workoutId": "not-an-object-id"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogHandler_CreateLog_MapsValidationError(t *testing.T) {
	fake := &fakeLogService{createErr: service.ErrLogValidationFailed}
	router := newLogTestRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/logs", bytes.NewReader([]byte(`{"notes": "no exercises"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogHandler_GetLogs(t *testing.T) {
	fake := &fakeLogService{
		recentLogs: []domain.WorkoutLog{
			{ID: primitive.NewObjectID(), UserID: domain.DemoUserID, Notes: "one"},
		},
	}
	router := newLogTestRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?limit=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, fake.gotLimit)

	var resp []LogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "one", resp[0].Notes)
}

func TestLogHandler_GetLogs_RejectsBadLimit(t *testing.T) {
	router := newLogTestRouter(&fakeLogService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?limit=-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogHandler_GetLogByID_NotFound(t *testing.T) {
	router := newLogTestRouter(&fakeLogService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/"+primitive.NewObjectID().Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func intPtr(v int) *int { return &v }
