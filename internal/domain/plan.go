// internal/domain/plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanSource indicates how a plan came to exist.
type PlanSource string

const (
	PlanSourceAI     PlanSource = "ai"
	PlanSourceManual PlanSource = "manual"
)

// Nutrition holds the nutrition guidance attached to a workout plan.
type Nutrition struct {
	DailyCalories int      `bson:"dailyCalories,omitempty" json:"dailyCalories,omitempty"`
	ProteinGrams  int      `bson:"proteinGrams,omitempty" json:"proteinGrams,omitempty"`
	CarbsGrams    int      `bson:"carbsGrams,omitempty" json:"carbsGrams,omitempty"`
	FatGrams      int      `bson:"fatGrams,omitempty" json:"fatGrams,omitempty"`
	Tips          []string `bson:"tips,omitempty" json:"tips,omitempty"`
}

// WorkoutPlan represents a multi-day training plan, either generated by the
// AI collaborator or created manually. Its individual sessions are stored
// as Workout documents linking back via PlanID.
type WorkoutPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"` // e.g., "4-Day Upper/Lower Split"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Goal        string             `bson:"goal,omitempty" json:"goal,omitempty"` // e.g., "strength", "fat loss"
	DaysPerWeek int                `bson:"daysPerWeek,omitempty" json:"daysPerWeek,omitempty"`
	Nutrition   *Nutrition         `bson:"nutrition,omitempty" json:"nutrition,omitempty"`
	Source      PlanSource         `bson:"source" json:"source"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
