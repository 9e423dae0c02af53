// internal/domain/log.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseEntry is one loosely-typed exercise-performance record inside a
// WorkoutLog. Every field except Name is optional; pointers distinguish
// "absent" from zero. Readers must guard each access rather than assume
// presence.
//
// Duration unit convention (inherited, see the planner README history):
//   - DurationMinutes is minutes,
//   - DurationSeconds is seconds,
//   - the generic Duration is treated as minutes, even though exercise
//     templates (PlannedExercise) use seconds for their duration field.
type ExerciseEntry struct {
	Name            string   `bson:"name,omitempty" json:"name,omitempty"`
	Sets            *int     `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps            *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight          *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	DurationMinutes *float64 `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Duration        *float64 `bson:"duration,omitempty" json:"duration,omitempty"`
	DurationSeconds *float64 `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
}

// WorkoutLog is one record of a completed training session.
//
// WorkoutID is nil for free-form sessions; upstream validation requires such
// logs to carry at least one exercise entry, but consumers (the progress
// engine in particular) must tolerate violations instead of failing.
type WorkoutLog struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"userId" json:"userId"`
	WorkoutID   *primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	CompletedAt *time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Exercises   []ExerciseEntry     `bson:"exercises,omitempty" json:"exercises,omitempty"`
	Notes       string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Rating      *int                `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5 satisfaction
	RPE         *int                `bson:"rpe,omitempty" json:"rpe,omitempty"`       // 1-10 perceived exertion

	DurationMinutes *int `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	CaloriesBurned  *int `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`

	Tags      []string  `bson:"tags,omitempty" json:"tags,omitempty"` // training-focus keywords
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
