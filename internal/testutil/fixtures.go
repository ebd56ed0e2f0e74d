package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls chain: an existing route context gains the new parameter.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given username.
func (f *Fixtures) CreateUser(ctx context.Context, username string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixture00",
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAdmin creates a test user with the admin flag set.
func (f *Fixtures) CreateAdmin(ctx context.Context, username string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, username)
	if _, err := f.db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": u.ID}, bson.M{"$set": bson.M{"admin": true}}); err != nil {
		f.t.Fatalf("failed to promote test user: %v", err)
	}
	u.Admin = true
	return u
}

// CreateCampsite creates a test campsite with the given name and no
// comments.
func (f *Fixtures) CreateCampsite(ctx context.Context, name string) models.Campsite {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Campsite{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Elevation:   1200,
		Cost:        25,
		Description: "A test campsite",
		Comments:    []models.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("campsites").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test campsite: %v", err)
	}
	return c
}

// AddComment appends a comment by the given author to an existing test
// campsite and returns the comment.
func (f *Fixtures) AddComment(ctx context.Context, campsiteID, authorID primitive.ObjectID, rating int, text string) models.Comment {
	f.t.Helper()

	now := time.Now().UTC()
	cm := models.Comment{
		ID:        primitive.NewObjectID(),
		Rating:    rating,
		Text:      text,
		Author:    authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := f.db.Collection("campsites").UpdateOne(ctx,
		bson.M{"_id": campsiteID},
		bson.M{"$push": bson.M{"comments": cm}})
	if err != nil {
		f.t.Fatalf("failed to add test comment: %v", err)
	}
	if res.MatchedCount == 0 {
		f.t.Fatalf("campsite %s not found for test comment", campsiteID.Hex())
	}
	return cm
}

// CreateFavorite creates a favorite document for the user seeded with
// the given campsite ids.
func (f *Fixtures) CreateFavorite(ctx context.Context, userID primitive.ObjectID, campsiteIDs ...primitive.ObjectID) models.Favorite {
	f.t.Helper()

	if campsiteIDs == nil {
		campsiteIDs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	fav := models.Favorite{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Campsites: campsiteIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("favorites").InsertOne(ctx, fav); err != nil {
		f.t.Fatalf("failed to create test favorite: %v", err)
	}
	return fav
}
