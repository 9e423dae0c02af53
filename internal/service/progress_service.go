package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/progress"
	"okoval/fitness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidWindow = errors.New("window must be between 1 and 31 days")
)

// Window bounds for progress reports.
const (
	MinWindowDays = 1
	MaxWindowDays = 31
)

// --- Service Interface ---
type ProgressService interface {
	// GetProgressReport computes the progress report over the trailing
	// windowDays calendar days ending today.
	GetProgressReport(ctx context.Context, userID primitive.ObjectID, windowDays int) (*progress.Report, error)
}

// --- Service Implementation ---

// progressService fetches the log snapshot and workout lookups, then hands
// everything to the pure engine. All I/O lives here; progress.Compute never
// touches a repository.
type progressService struct {
	logRepo     repository.LogRepository
	workoutRepo repository.WorkoutRepository
	now         func() time.Time // injectable clock for tests
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(logRepo repository.LogRepository, workoutRepo repository.WorkoutRepository) ProgressService {
	return &progressService{
		logRepo:     logRepo,
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

func (s *progressService) GetProgressReport(ctx context.Context, userID primitive.ObjectID, windowDays int) (*progress.Report, error) {
	if windowDays < MinWindowDays || windowDays > MaxWindowDays {
		return nil, ErrInvalidWindow
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}

	now := s.now()
	windowStart := startOfDay(now).AddDate(0, 0, -(windowDays - 1))

	logs, err := s.logRepo.GetByUserInRange(ctx, userID, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("fetch logs in range: %w", err)
	}

	workoutsByID, err := s.lookupWorkouts(ctx, logs)
	if err != nil {
		return nil, err
	}

	report := progress.Compute(logs, workoutsByID, now, windowDays)
	return &report, nil
}

// lookupWorkouts batch-fetches the workouts referenced by the logs, for
// duration backfill. Dangling references are fine; the engine falls back to
// the per-exercise duration fields.
func (s *progressService) lookupWorkouts(ctx context.Context, logs []domain.WorkoutLog) (map[primitive.ObjectID]domain.Workout, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, l := range logs {
		if l.WorkoutID == nil {
			continue
		}
		if _, ok := seen[*l.WorkoutID]; ok {
			continue
		}
		seen[*l.WorkoutID] = struct{}{}
		ids = append(ids, *l.WorkoutID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	workouts, err := s.workoutRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("batch fetch workouts: %w", err)
	}

	byID := make(map[primitive.ObjectID]domain.Workout, len(workouts))
	for _, w := range workouts {
		byID[w.ID] = w
	}
	return byID, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
