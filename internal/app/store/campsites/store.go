// Package campsitestore persists campsites and their embedded comment
// arrays.
//
// Comment mutations use Mongo's atomic array operators ($push, $pull,
// array-filtered $set) so a single operation can never corrupt the
// array; the handlers additionally serialize the read-check-write
// sequences per campsite id.
package campsitestore

import (
	"context"
	"errors"
	"time"

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
	return &Store{c: db.Collection("campsites")}
}

var errNameRequired = errors.New("campsite name is required")

// List returns every campsite.
func (s *Store) List(ctx context.Context) ([]models.Campsite, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var campsites []models.Campsite
	if err := cur.All(ctx, &campsites); err != nil {
		return nil, err
	}
	return campsites, nil
}

// GetByID loads a campsite by ObjectID. Returns mongo.ErrNoDocuments if
// not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campsite, error) {
	var c models.Campsite
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByIDs loads the given campsites in one query, preserving the order
// of ids. Missing ids are skipped.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Campsite, error) {
	if len(ids) == 0 {
		return []models.Campsite{}, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]models.Campsite, len(ids))
	for cur.Next(ctx) {
		var c models.Campsite
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		byID[c.ID] = c
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Campsite, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// Create inserts a new campsite with an empty comment array.
func (s *Store) Create(ctx context.Context, c models.Campsite) (models.Campsite, error) {
	if c.Name == "" {
		return models.Campsite{}, errNameRequired
	}

	c.ID = primitive.NewObjectID()
	if c.Comments == nil {
		c.Comments = []models.Comment{}
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Campsite{}, err
	}
	return c, nil
}

// UpdateByID applies a $set of the given fields and returns the post-
// update document, or nil when no campsite matches.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Campsite, error) {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	var c models.Campsite
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteByID removes a campsite and returns the deleted document, or nil
// when no campsite matches.
func (s *Store) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Campsite, error) {
	var c models.Campsite
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteAll removes every campsite and returns the deleted count.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

/* ------------------------------ comments ------------------------------ */

// AddComment atomically appends a comment to the campsite's embedded
// array and returns the updated document, or nil when the campsite is
// absent.
func (s *Store) AddComment(ctx context.Context, campsiteID primitive.ObjectID, comment models.Comment) (*models.Campsite, error) {
	var c models.Campsite
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": campsiteID},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateComment applies a $set to the matching embedded comment via an
// array filter and returns the updated campsite, or nil when either the
// campsite or the comment is absent.
func (s *Store) UpdateComment(ctx context.Context, campsiteID, commentID primitive.ObjectID, fields bson.M) (*models.Campsite, error) {
	now := time.Now()
	set := bson.M{
		"updated_at":                  now,
		"comments.$[elem].updated_at": now,
	}
	for k, v := range fields {
		set["comments.$[elem]."+k] = v
	}

	var c models.Campsite
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": campsiteID, "comments._id": commentID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetArrayFilters(options.ArrayFilters{
				Filters: []any{bson.M{"elem._id": commentID}},
			}),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RemoveComment atomically pulls one comment out of the array and returns
// the updated campsite, or nil when the campsite is absent.
func (s *Store) RemoveComment(ctx context.Context, campsiteID, commentID primitive.ObjectID) (*models.Campsite, error) {
	var c models.Campsite
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": campsiteID},
		bson.M{
			"$pull": bson.M{"comments": bson.M{"_id": commentID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ClearComments removes every comment from the campsite and returns the
// emptied document, or nil when the campsite is absent.
func (s *Store) ClearComments(ctx context.Context, campsiteID primitive.ObjectID) (*models.Campsite, error) {
	var c models.Campsite
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": campsiteID},
		bson.M{"$set": bson.M{
			"comments":   []models.Comment{},
			"updated_at": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
