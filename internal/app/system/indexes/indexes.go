// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent:
CreateOne is a no-op when an index with the same keys and options already
exists. Errors are aggregated so any problem is visible and startup can
fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureFavorites(ctx, db); err != nil {
		problems = append(problems, "favorites: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// users: usernames are unique account identifiers.
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("uniq_username").SetUnique(true),
	})
	return err
}

// favorites: at most one favorite document per user.
func ensureFavorites(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("favorites").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("uniq_user").SetUnique(true),
	})
	return err
}
