// internal/domain/equipment.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Equipment represents a single piece of training equipment in the user's catalog.
type Equipment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"` // e.g., "Free Weights", "Cardio", "Bands"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	// PhotoObjectKey is the key of the equipment photo in the S3 bucket.
	// Empty when no photo has been uploaded. Never exposed directly;
	// clients get a presigned download URL instead.
	PhotoObjectKey string `bson:"photoObjectKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
