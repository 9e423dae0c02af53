package service

// In-memory repository and collaborator fakes shared by the service tests.

import (
	"context"
	"time"

	"okoval/fitness-planner/internal/ai"
	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Equipment ---

type fakeEquipmentRepo struct {
	items map[primitive.ObjectID]*domain.Equipment

	createErr error
	updateErr error
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[primitive.ObjectID]*domain.Equipment)}
}

func (f *fakeEquipmentRepo) Create(_ context.Context, equipment *domain.Equipment) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	id := primitive.NewObjectID()
	now := time.Now()
	stored := *equipment
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.items[id] = &stored
	return id, nil
}

func (f *fakeEquipmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Equipment, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeEquipmentRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Equipment, error) {
	var out []domain.Equipment
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) Update(_ context.Context, equipment *domain.Equipment) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.items[equipment.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *equipment
	stored.UpdatedAt = time.Now()
	f.items[equipment.ID] = &stored
	return nil
}

func (f *fakeEquipmentRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	item, ok := f.items[id]
	if !ok || item.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// --- Plans ---

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.WorkoutPlan

	createErr error
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.WorkoutPlan)}
}

func (f *fakePlanRepo) Create(_ context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	id := primitive.NewObjectID()
	now := time.Now()
	stored := *plan
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.plans[id] = &stored
	return id, nil
}

func (f *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (f *fakePlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	var out []domain.WorkoutPlan
	for _, plan := range f.plans {
		if plan.UserID == userID {
			out = append(out, *plan)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) Update(_ context.Context, plan *domain.WorkoutPlan) error {
	if _, ok := f.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *plan
	stored.UpdatedAt = time.Now()
	f.plans[plan.ID] = &stored
	return nil
}

func (f *fakePlanRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	plan, ok := f.plans[id]
	if !ok || plan.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.plans, id)
	return nil
}

// --- Workouts ---

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.Workout

	createErr       error
	failAfterCreate int // fail the Nth Create call (1-based), 0 disables
	createCalls     int
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)}
}

func (f *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	f.createCalls++
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	if f.failAfterCreate > 0 && f.createCalls >= f.failAfterCreate {
		return primitive.NilObjectID, repository.RepositoryError("create failed")
	}
	id := primitive.NewObjectID()
	now := time.Now()
	stored := *workout
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.workouts[id] = &stored
	return id, nil
}

func (f *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, ok := f.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *workout
	return &copied, nil
}

func (f *fakeWorkoutRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, workout := range f.workouts {
		if workout.PlanID == planID {
			out = append(out, *workout)
		}
	}
	return out, nil
}

func (f *fakeWorkoutRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, id := range ids {
		if workout, ok := f.workouts[id]; ok {
			out = append(out, *workout)
		}
	}
	return out, nil
}

func (f *fakeWorkoutRepo) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) error {
	for id, workout := range f.workouts {
		if workout.PlanID == planID {
			delete(f.workouts, id)
		}
	}
	return nil
}

// --- Logs ---

type fakeLogRepo struct {
	logs map[primitive.ObjectID]*domain.WorkoutLog

	rangeErr error
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: make(map[primitive.ObjectID]*domain.WorkoutLog)}
}

func (f *fakeLogRepo) Create(_ context.Context, workoutLog *domain.WorkoutLog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	now := time.Now()
	stored := *workoutLog
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.logs[id] = &stored
	return id, nil
}

func (f *fakeLogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	workoutLog, ok := f.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *workoutLog
	return &copied, nil
}

func (f *fakeLogRepo) GetByUserInRange(_ context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.WorkoutLog, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	var out []domain.WorkoutLog
	for _, workoutLog := range f.logs {
		if workoutLog.UserID != userID || workoutLog.CompletedAt == nil {
			continue
		}
		at := *workoutLog.CompletedAt
		if at.Before(start) || at.After(end) {
			continue
		}
		out = append(out, *workoutLog)
	}
	return out, nil
}

func (f *fakeLogRepo) GetRecentByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	for _, workoutLog := range f.logs {
		if workoutLog.UserID == userID {
			out = append(out, *workoutLog)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLogRepo) Update(_ context.Context, workoutLog *domain.WorkoutLog) error {
	if _, ok := f.logs[workoutLog.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *workoutLog
	stored.UpdatedAt = time.Now()
	f.logs[workoutLog.ID] = &stored
	return nil
}

func (f *fakeLogRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	workoutLog, ok := f.logs[id]
	if !ok || workoutLog.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.logs, id)
	return nil
}

// --- Storage ---

type fakeFileStorage struct {
	uploadCalls   []string // object keys passed to GeneratePresignedUploadURL
	downloadCalls []string
	deletedKeys   []string

	uploadErr error
	deleteErr error
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadCalls = append(f.uploadCalls, objectKey)
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	f.downloadCalls = append(f.downloadCalls, objectKey)
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedKeys = append(f.deletedKeys, objectKey)
	return nil
}

// --- Plan Generator ---

type fakeGenerator struct {
	lastRequest ai.PlanRequest
	plan        *ai.GeneratedPlan
	err         error
}

func (f *fakeGenerator) GeneratePlan(_ context.Context, req ai.PlanRequest) (*ai.GeneratedPlan, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}
