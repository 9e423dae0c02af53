package service

import (
	"context"
	"errors"
	"fmt"

	"okoval/fitness-planner/internal/ai"
	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound         = errors.New("workout plan not found")
	ErrPlanAccessDenied     = errors.New("access denied to this workout plan")
	ErrPlanValidationFailed = errors.New("workout plan validation failed")
	ErrWorkoutNotFound      = errors.New("workout not found")
	ErrPlanGenerationFailed = errors.New("workout plan generation failed")
)

// PlanInput carries the fields of a manual plan create/update.
type PlanInput struct {
	Name        string
	Description string
	Goal        string
	DaysPerWeek int
	Nutrition   *domain.Nutrition
	IsActive    bool
}

// GeneratePlanInput carries the user's inputs for AI plan generation.
type GeneratePlanInput struct {
	Goal            string
	ExperienceLevel string
	DaysPerWeek     int
	SessionMinutes  int
}

// --- Service Interface ---
type PlanService interface {
	CreatePlan(ctx context.Context, userID primitive.ObjectID, input PlanInput) (*domain.WorkoutPlan, error)
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, input GeneratePlanInput) (*domain.WorkoutPlan, []domain.Workout, error)
	GetPlanByID(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetPlansByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, userID, planID primitive.ObjectID, input PlanInput) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error

	GetWorkoutsForPlan(ctx context.Context, userID, planID primitive.ObjectID) ([]domain.Workout, error)
	GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
}

// --- Service Implementation ---

type planService struct {
	planRepo      repository.PlanRepository
	workoutRepo   repository.WorkoutRepository
	equipmentRepo repository.EquipmentRepository
	generator     ai.Generator
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.PlanRepository,
	workoutRepo repository.WorkoutRepository,
	equipmentRepo repository.EquipmentRepository,
	generator ai.Generator,
) PlanService {
	return &planService{
		planRepo:      planRepo,
		workoutRepo:   workoutRepo,
		equipmentRepo: equipmentRepo,
		generator:     generator,
	}
}

// CreatePlan handles manual plan creation.
func (s *planService) CreatePlan(ctx context.Context, userID primitive.ObjectID, input PlanInput) (*domain.WorkoutPlan, error) {
	if input.Name == "" {
		return nil, ErrPlanValidationFailed
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a plan")
	}

	plan := &domain.WorkoutPlan{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Goal:        input.Goal,
		DaysPerWeek: input.DaysPerWeek,
		Nutrition:   input.Nutrition,
		Source:      domain.PlanSourceManual,
		IsActive:    input.IsActive,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID)
}

// GeneratePlan gathers the user's equipment, asks the chat-completion API
// for a plan document and persists the plan together with its workouts.
func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, input GeneratePlanInput) (*domain.WorkoutPlan, []domain.Workout, error) {
	if input.Goal == "" {
		return nil, nil, ErrPlanValidationFailed
	}
	if input.DaysPerWeek < 1 || input.DaysPerWeek > 7 {
		return nil, nil, ErrPlanValidationFailed
	}

	equipment, err := s.equipmentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch equipment for generation: %w", err)
	}
	equipmentNames := make([]string, 0, len(equipment))
	for _, e := range equipment {
		equipmentNames = append(equipmentNames, e.Name)
	}

	generated, err := s.generator.GeneratePlan(ctx, ai.PlanRequest{
		Goal:            input.Goal,
		ExperienceLevel: input.ExperienceLevel,
		DaysPerWeek:     input.DaysPerWeek,
		SessionMinutes:  input.SessionMinutes,
		Equipment:       equipmentNames,
	})
	if err != nil {
		log.WithError(err).Error("plan generation failed")
		return nil, nil, fmt.Errorf("%w: %v", ErrPlanGenerationFailed, err)
	}

	plan := &domain.WorkoutPlan{
		UserID:      userID,
		Name:        generated.Name,
		Description: generated.Description,
		Goal:        input.Goal,
		DaysPerWeek: input.DaysPerWeek,
		Nutrition: &domain.Nutrition{
			DailyCalories: generated.Nutrition.DailyCalories,
			ProteinGrams:  generated.Nutrition.ProteinGrams,
			CarbsGrams:    generated.Nutrition.CarbsGrams,
			FatGrams:      generated.Nutrition.FatGrams,
			Tips:          generated.Nutrition.Tips,
		},
		Source: domain.PlanSourceAI,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, nil, err
	}
	plan.ID = planID

	workouts := make([]domain.Workout, 0, len(generated.Days))
	for i, day := range generated.Days {
		workout := domain.Workout{
			PlanID:            planID,
			UserID:            userID,
			Name:              day.Name,
			Focus:             day.Focus,
			EstimatedDuration: day.EstimatedDuration,
			Sequence:          i,
		}
		if day.DayOfWeek >= 1 && day.DayOfWeek <= 7 {
			dow := day.DayOfWeek
			workout.DayOfWeek = &dow
		}
		for _, ex := range day.Exercises {
			workout.Exercises = append(workout.Exercises, domain.PlannedExercise{
				Name:            ex.Name,
				Sets:            ex.Sets,
				Reps:            ex.Reps,
				DurationSeconds: ex.DurationSeconds,
				RestSeconds:     ex.RestSeconds,
				Equipment:       ex.Equipment,
			})
		}

		workoutID, err := s.workoutRepo.Create(ctx, &workout)
		if err != nil {
			// Partially persisted plans are cleaned up so a retry starts fresh.
			if delErr := s.workoutRepo.DeleteByPlanID(ctx, planID); delErr != nil {
				log.WithError(delErr).Errorf("failed to clean up workouts of plan %s", planID.Hex())
			}
			if delErr := s.planRepo.Delete(ctx, planID, userID); delErr != nil {
				log.WithError(delErr).Errorf("failed to clean up plan %s", planID.Hex())
			}
			return nil, nil, err
		}
		workout.ID = workoutID
		workouts = append(workouts, workout)
	}

	log.Debugf("generated plan %s with %d workouts for user %s", planID.Hex(), len(workouts), userID.Hex())
	return plan, workouts, nil
}

// GetPlanByID retrieves a single plan, enforcing ownership.
func (s *planService) GetPlanByID(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// GetPlansByUser retrieves all of the user's plans.
func (s *planService) GetPlansByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.planRepo.GetByUserID(ctx, userID)
}

// UpdatePlan handles updating an existing plan, ensuring ownership.
func (s *planService) UpdatePlan(ctx context.Context, userID, planID primitive.ObjectID, input PlanInput) (*domain.WorkoutPlan, error) {
	if input.Name == "" {
		return nil, ErrPlanValidationFailed
	}

	existing, err := s.GetPlanByID(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Goal = input.Goal
	existing.DaysPerWeek = input.DaysPerWeek
	existing.Nutrition = input.Nutrition
	existing.IsActive = input.IsActive

	if err := s.planRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeletePlan removes a plan and cascades to its workouts.
func (s *planService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	if err := s.planRepo.Delete(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if err := s.workoutRepo.DeleteByPlanID(ctx, planID); err != nil {
		// Orphaned workouts are invisible without their plan; log and move on.
		log.WithError(err).Errorf("failed to delete workouts of plan %s", planID.Hex())
	}
	return nil
}

// GetWorkoutsForPlan lists a plan's workouts, enforcing plan ownership.
func (s *planService) GetWorkoutsForPlan(ctx context.Context, userID, planID primitive.ObjectID) ([]domain.Workout, error) {
	if _, err := s.GetPlanByID(ctx, userID, planID); err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByPlanID(ctx, planID)
}

// GetWorkoutByID retrieves a single workout, enforcing ownership.
func (s *planService) GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return workout, nil
}
