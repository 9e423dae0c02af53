package ai

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidPlan = errors.New("generated plan document failed validation")
)

// PlanRequest carries the user's inputs for plan generation, plus the
// equipment names gathered from their catalog.
type PlanRequest struct {
	Goal            string
	ExperienceLevel string
	DaysPerWeek     int
	SessionMinutes  int
	Equipment       []string
}

// Generator produces a validated workout plan document. The HTTP-backed
// Client is the real implementation; tests substitute a canned one.
type Generator interface {
	GeneratePlan(ctx context.Context, req PlanRequest) (*GeneratedPlan, error)
}

// GeneratedPlan is the plan document returned by the chat-completion API.
// The field set mirrors what the plan service persists as a WorkoutPlan
// with its Workouts.
type GeneratedPlan struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Days        []GeneratedDay     `json:"days"`
	Nutrition   GeneratedNutrition `json:"nutrition"`
}

type GeneratedDay struct {
	Name              string              `json:"name"`
	Focus             string              `json:"focus"`
	DayOfWeek         int                 `json:"dayOfWeek,omitempty"` // 1 (Mon) - 7 (Sun), 0 when unscheduled
	EstimatedDuration int                 `json:"estimatedDurationMinutes"`
	Exercises         []GeneratedExercise `json:"exercises"`
}

type GeneratedExercise struct {
	Name            string `json:"name"`
	Sets            int    `json:"sets,omitempty"`
	Reps            int    `json:"reps,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
	RestSeconds     int    `json:"restSeconds,omitempty"`
	Equipment       string `json:"equipment,omitempty"`
}

type GeneratedNutrition struct {
	DailyCalories int      `json:"dailyCalories"`
	ProteinGrams  int      `json:"proteinGrams"`
	CarbsGrams    int      `json:"carbsGrams"`
	FatGrams      int      `json:"fatGrams"`
	Tips          []string `json:"tips,omitempty"`
}

// Validate checks the structural invariants the rest of the system relies
// on: a named plan with at least one day, every day holding at least one
// named exercise, and nutrition guidance present. Model output that fails
// here is rejected rather than silently persisted.
func (p *GeneratedPlan) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: missing plan name", ErrInvalidPlan)
	}
	if len(p.Days) == 0 {
		return fmt.Errorf("%w: plan has no days", ErrInvalidPlan)
	}
	for i, day := range p.Days {
		if day.Name == "" {
			return fmt.Errorf("%w: day %d has no name", ErrInvalidPlan, i+1)
		}
		if len(day.Exercises) == 0 {
			return fmt.Errorf("%w: day %q has no exercises", ErrInvalidPlan, day.Name)
		}
		for _, ex := range day.Exercises {
			if ex.Name == "" {
				return fmt.Errorf("%w: day %q contains an unnamed exercise", ErrInvalidPlan, day.Name)
			}
		}
	}
	if p.Nutrition.DailyCalories <= 0 {
		return fmt.Errorf("%w: missing nutrition guidance", ErrInvalidPlan)
	}
	return nil
}
