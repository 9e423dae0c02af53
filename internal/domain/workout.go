// internal/domain/workout.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlannedExercise is one prescribed exercise inside a predefined Workout.
// DurationSeconds here is in seconds, unlike the loosely-typed performance
// entries on WorkoutLog where the generic duration field is treated as minutes.
type PlannedExercise struct {
	Name            string `bson:"name" json:"name"`
	Sets            int    `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps            int    `bson:"reps,omitempty" json:"reps,omitempty"`
	DurationSeconds int    `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	RestSeconds     int    `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	Equipment       string `bson:"equipment,omitempty" json:"equipment,omitempty"`
}

// Workout represents a single predefined workout session within a WorkoutPlan.
type Workout struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID primitive.ObjectID `bson:"planId" json:"planId"` // Link back to the plan
	UserID primitive.ObjectID `bson:"userId" json:"userId"` // Denormalized for easier query
	Name   string             `bson:"name" json:"name"`     // e.g., "Day 1: Upper Body"

	DayOfWeek *int   `bson:"dayOfWeek,omitempty" json:"dayOfWeek,omitempty"` // Optional: 1 (Mon) - 7 (Sun)
	Focus     string `bson:"focus,omitempty" json:"focus,omitempty"`         // e.g., "push", "legs", "conditioning"

	// EstimatedDuration is the expected session length in minutes. The progress
	// engine uses it to backfill logs that omit their own duration.
	EstimatedDuration int `bson:"estimatedDuration,omitempty" json:"estimatedDuration,omitempty"`

	Exercises []PlannedExercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
	Sequence  int               `bson:"sequence"` // Order within the plan
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}
