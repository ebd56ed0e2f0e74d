package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// ErrDuplicateUsername is returned when attempting to create a user with
// a username that already exists.
var ErrDuplicateUsername = errors.New("a user with this username already exists")

var errUsernameRequired = errors.New("username is required")

// List returns every user. Admin-only callers; the handler enforces that.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername looks up a user by exact username. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDs loads the given users in one query and returns them keyed by
// id. Missing ids are simply absent from the map.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cur.Err()
}

// Create inserts a new user. The caller supplies PasswordHash already
// hashed; this store never sees plaintext credentials.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return models.User{}, errUsernameRequired
	}

	u.ID = primitive.NewObjectID()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}
