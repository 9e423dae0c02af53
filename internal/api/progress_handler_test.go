package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"okoval/fitness-planner/internal/progress"
	"okoval/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProgressService struct {
	report       *progress.Report
	err          error
	gotUserID    primitive.ObjectID
	gotWindow    int
	calledReport bool
}

func (f *fakeProgressService) GetProgressReport(_ context.Context, userID primitive.ObjectID, windowDays int) (*progress.Report, error) {
	f.calledReport = true
	f.gotUserID = userID
	f.gotWindow = windowDays
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func newProgressTestRouter(svc service.ProgressService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewProgressHandler(svc)
	router.GET("/api/v1/progress", IdentityMiddleware(), handler.GetProgress)
	return router
}

func TestProgressHandler_GetProgress(t *testing.T) {
	fake := &fakeProgressService{
		report: &progress.Report{
			TotalWorkouts: 5,
			CurrentStreak: 2,
			WindowDays:    14,
			Weeks: []progress.WeeklySummary{
				{WeekStart: "2025-06-07", WeekEnd: "2025-06-13", Workouts: 2},
				{WeekStart: "2025-06-14", WeekEnd: "2025-06-20", Workouts: 3},
			},
		},
	}
	router := newProgressTestRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress?days=14", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 14, fake.gotWindow)

	var got progress.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 5, got.TotalWorkouts)
	require.Len(t, got.Weeks, 2)
	// Presentation order: most recent week first.
	assert.Equal(t, "2025-06-14", got.Weeks[0].WeekStart)
	assert.Equal(t, "2025-06-07", got.Weeks[1].WeekStart)
}

func TestProgressHandler_GetProgress_DefaultWindow(t *testing.T) {
	fake := &fakeProgressService{report: &progress.Report{WindowDays: 30}}
	router := newProgressTestRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DefaultProgressWindowDays, fake.gotWindow)
}

func TestProgressHandler_GetProgress_RejectsBadDays(t *testing.T) {
	tests := []struct {
		name string
		days string
	}{
		{"not a number", "abc"},
		{"zero", "0"},
		{"negative", "-3"},
		{"too large", "32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProgressService{report: &progress.Report{}}
			router := newProgressTestRouter(fake)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/progress?days="+tt.days, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, fake.calledReport, "service must not be called for invalid input")
		})
	}
}

func TestProgressHandler_GetProgress_ServiceFailure(t *testing.T) {
	fake := &fakeProgressService{err: errors.New("mongo down")}
	router := newProgressTestRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress?days=7", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
