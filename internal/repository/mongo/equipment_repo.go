package mongo

import (
	"context"
	"errors"
	"time"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const equipmentCollectionName = "equipment"

// mongoEquipmentRepository implements repository.EquipmentRepository
type mongoEquipmentRepository struct {
	collection *mongo.Collection
}

// NewMongoEquipmentRepository creates a new Equipment repository backed by MongoDB.
func NewMongoEquipmentRepository(db *mongo.Database) repository.EquipmentRepository {
	return &mongoEquipmentRepository{
		collection: db.Collection(equipmentCollectionName),
	}
}

// Create inserts a new equipment item into the database.
func (r *mongoEquipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) (primitive.ObjectID, error) {
	if equipment.Name == "" || equipment.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("equipment name and user ID are required")
	}

	equipment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	equipment.CreatedAt = now
	equipment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, equipment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves an equipment item by its ID.
func (r *mongoEquipmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Equipment, error) {
	var equipment domain.Equipment
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&equipment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

// GetByUserID retrieves all equipment items owned by a specific user.
func (r *mongoEquipmentRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Equipment, error) {
	var items []domain.Equipment
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}) // Newest first

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Update modifies an existing equipment item.
// The owner (UserID) is never changed and UpdatedAt is refreshed.
func (r *mongoEquipmentRepository) Update(ctx context.Context, equipment *domain.Equipment) error {
	if equipment.ID == primitive.NilObjectID {
		return errors.New("equipment ID is required for update")
	}
	if equipment.Name == "" {
		return errors.New("equipment name cannot be empty")
	}

	filter := bson.M{"_id": equipment.ID}
	update := bson.M{
		"$set": bson.M{
			"name":           equipment.Name,
			"category":       equipment.Category,
			"description":    equipment.Description,
			"photoObjectKey": equipment.PhotoObjectKey,
			"updatedAt":      time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an equipment item, ensuring it belongs to the specified user.
func (r *mongoEquipmentRepository) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	// The filter only matches when both _id and userId agree, so a mismatched
	// owner falls through to ErrNotFound.
	filter := bson.M{
		"_id":    id,
		"userId": userID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureEquipmentIndexes creates necessary indexes for the equipment collection.
func EnsureEquipmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("equipment_text_search"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logIndexWarning(collection.Name(), err)
	}
}
