package service

import (
	"context"
	"errors"
	"time"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogNotFound         = errors.New("workout log not found")
	ErrLogAccessDenied     = errors.New("access denied to this workout log")
	ErrLogValidationFailed = errors.New("workout log validation failed")
)

// LogInput carries the fields of a log create/update.
type LogInput struct {
	WorkoutID       *primitive.ObjectID
	CompletedAt     *time.Time
	Exercises       []domain.ExerciseEntry
	Notes           string
	Rating          *int
	RPE             *int
	DurationMinutes *int
	CaloriesBurned  *int
	Tags            []string
}

// --- Service Interface ---
type LogService interface {
	CreateLog(ctx context.Context, userID primitive.ObjectID, input LogInput) (*domain.WorkoutLog, error)
	GetLogByID(ctx context.Context, userID, logID primitive.ObjectID) (*domain.WorkoutLog, error)
	GetRecentLogs(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutLog, error)
	UpdateLog(ctx context.Context, userID, logID primitive.ObjectID, input LogInput) (*domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, userID, logID primitive.ObjectID) error
}

// --- Service Implementation ---

type logService struct {
	logRepo     repository.LogRepository
	workoutRepo repository.WorkoutRepository
}

// NewLogService creates a new instance of logService.
func NewLogService(logRepo repository.LogRepository, workoutRepo repository.WorkoutRepository) LogService {
	return &logService{
		logRepo:     logRepo,
		workoutRepo: workoutRepo,
	}
}

// validateInput enforces the upstream invariants before a log reaches
// storage: a free-form log (no workout reference) needs at least one
// exercise entry, and rating/RPE must be inside their scales when present.
// The progress engine downstream tolerates violations anyway; this is the
// layer responsible for preventing them.
func (s *logService) validateInput(ctx context.Context, userID primitive.ObjectID, input LogInput) error {
	if input.WorkoutID == nil && len(input.Exercises) == 0 {
		return ErrLogValidationFailed
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return ErrLogValidationFailed
	}
	if input.RPE != nil && (*input.RPE < 1 || *input.RPE > 10) {
		return ErrLogValidationFailed
	}
	if input.DurationMinutes != nil && *input.DurationMinutes < 0 {
		return ErrLogValidationFailed
	}
	if input.CaloriesBurned != nil && *input.CaloriesBurned < 0 {
		return ErrLogValidationFailed
	}

	if input.WorkoutID != nil {
		workout, err := s.workoutRepo.GetByID(ctx, *input.WorkoutID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrWorkoutNotFound
			}
			return err
		}
		if workout.UserID != userID {
			return ErrLogAccessDenied
		}
	}
	return nil
}

// CreateLog records a completed session.
func (s *logService) CreateLog(ctx context.Context, userID primitive.ObjectID, input LogInput) (*domain.WorkoutLog, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a log")
	}
	if err := s.validateInput(ctx, userID, input); err != nil {
		return nil, err
	}

	workoutLog := &domain.WorkoutLog{
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
	}

	logID, err := s.logRepo.Create(ctx, workoutLog)
	if err != nil {
		return nil, err
	}
	return s.logRepo.GetByID(ctx, logID)
}

// GetLogByID retrieves a single log, enforcing ownership.
func (s *logService) GetLogByID(ctx context.Context, userID, logID primitive.ObjectID) (*domain.WorkoutLog, error) {
	workoutLog, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if workoutLog.UserID != userID {
		return nil, ErrLogAccessDenied
	}
	return workoutLog, nil
}

// GetRecentLogs retrieves a user's most recent logs, newest first.
func (s *logService) GetRecentLogs(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutLog, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.logRepo.GetRecentByUser(ctx, userID, limit)
}

// UpdateLog replaces the mutable fields of an existing log.
func (s *logService) UpdateLog(ctx context.Context, userID, logID primitive.ObjectID, input LogInput) (*domain.WorkoutLog, error) {
	existing, err := s.GetLogByID(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, userID, input); err != nil {
		return nil, err
	}

	existing.WorkoutID = input.WorkoutID
	existing.CompletedAt = input.CompletedAt
	existing.Exercises = input.Exercises
	existing.Notes = input.Notes
	existing.Rating = input.Rating
	existing.RPE = input.RPE
	existing.DurationMinutes = input.DurationMinutes
	existing.CaloriesBurned = input.CaloriesBurned
	existing.Tags = input.Tags

	if err := s.logRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteLog removes a log, enforcing ownership.
func (s *logService) DeleteLog(ctx context.Context, userID, logID primitive.ObjectID) error {
	if err := s.logRepo.Delete(ctx, logID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	return nil
}
