// internal/domain/models/favorite.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is a per-user list of campsite references.
//
// Invariant: at most one favorite document exists per user (enforced by a
// unique index on "user"), and Campsites never contains duplicates
// (inserts go through $addToSet).
type Favorite struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID   `bson:"user" json:"user"`
	Campsites []primitive.ObjectID `bson:"campsites" json:"campsites"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Contains reports whether id is already in the campsites set.
func (f *Favorite) Contains(id primitive.ObjectID) bool {
	for _, c := range f.Campsites {
		if c == id {
			return true
		}
	}
	return false
}
