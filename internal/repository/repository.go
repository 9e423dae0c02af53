package repository

import (
	"context"
	"time"

	"okoval/fitness-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// EquipmentRepository defines the interface for interacting with equipment data.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Equipment, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Equipment, error)
	Update(ctx context.Context, equipment *domain.Equipment) error
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error // Ensure user owns the equipment
}

// PlanRepository defines the interface for interacting with workout plan data.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for interacting with predefined workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Workout, error)
	// GetByIDs batch-fetches workouts; IDs with no matching document are
	// simply absent from the result.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Workout, error)
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}

// LogRepository defines the interface for interacting with workout log data.
type LogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	// GetByUserInRange returns a user's logs whose completedAt falls within
	// [start, end], inclusive. No ordering guarantee; the progress engine
	// buckets by date itself.
	GetByUserInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutLog, error)
	GetRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutLog, error)
	Update(ctx context.Context, log *domain.WorkoutLog) error
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}
