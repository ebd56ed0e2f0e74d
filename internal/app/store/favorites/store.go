// Package favoritestore persists per-user favorite-campsite lists.
//
// Invariants: one favorite document per user (unique index on "user"),
// and the campsites array is a set — inserts go through $addToSet so a
// campsite id can never appear twice regardless of request interleaving.
package favoritestore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("favorites")}
}

// GetByUser loads the user's favorite document. Returns
// mongo.ErrNoDocuments when the user has none.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Favorite, error) {
	var f models.Favorite
	if err := s.c.FindOne(ctx, bson.M{"user": userID}).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a favorite document seeded with the given campsite ids,
// deduplicated. If a concurrent request created one first (unique-index
// violation), the ids are merged into the existing document instead.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, campsiteIDs []primitive.ObjectID) (*models.Favorite, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(campsiteIDs))
	deduped := make([]primitive.ObjectID, 0, len(campsiteIDs))
	for _, id := range campsiteIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}

	now := time.Now()
	f := models.Favorite{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Campsites: deduped,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		if wafflemongo.IsDup(err) {
			return s.AddCampsites(ctx, userID, campsiteIDs)
		}
		return nil, err
	}
	return &f, nil
}

// AddCampsites adds any ids not already present to the user's set and
// returns the updated document, or nil when the user has no favorite.
func (s *Store) AddCampsites(ctx context.Context, userID primitive.ObjectID, campsiteIDs []primitive.ObjectID) (*models.Favorite, error) {
	var f models.Favorite
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"user": userID},
		bson.M{
			"$addToSet": bson.M{"campsites": bson.M{"$each": campsiteIDs}},
			"$set":      bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// RemoveCampsite pulls one id from the user's set and returns the
// updated document, or nil when the user has no favorite.
func (s *Store) RemoveCampsite(ctx context.Context, userID, campsiteID primitive.ObjectID) (*models.Favorite, error) {
	var f models.Favorite
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"user": userID},
		bson.M{
			"$pull": bson.M{"campsites": campsiteID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteByUser removes the user's favorite document and returns it, or
// nil when there was none to delete.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (*models.Favorite, error) {
	var f models.Favorite
	err := s.c.FindOneAndDelete(ctx, bson.M{"user": userID}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
