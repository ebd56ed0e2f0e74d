// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can author comments and keep favorites.
//
// PasswordHash is a bcrypt hash and is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	FirstName    string             `bson:"firstname,omitempty" json:"firstname,omitempty"`
	LastName     string             `bson:"lastname,omitempty" json:"lastname,omitempty"`
	Admin        bool               `bson:"admin" json:"admin"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
