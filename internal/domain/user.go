package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The planner runs as a single-user demo deployment: there is no account
// management, and every request is attributed to the same fixed identity.
// The identity middleware stamps this ID into the request context so the
// handlers and services stay user-scoped and multi-user storage layouts
// keep working unchanged.
var DemoUserID = mustObjectID("64b0f00dfeedc0ffee000001")

func mustObjectID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic("invalid builtin object id: " + hex)
	}
	return id
}
