package campsites_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/trailpost/trailpost/internal/app/features/campsites"
	"github.com/trailpost/trailpost/internal/app/system/auth"
	"github.com/trailpost/trailpost/internal/domain/models"
	"github.com/trailpost/trailpost/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*campsites.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := campsites.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func newTestRouter(t *testing.T, h *campsites.Handler) http.Handler {
	t.Helper()
	mgr, err := auth.NewManager(
		strings.Repeat("k", 32), time.Hour,
		strings.Repeat("s", 32), "session-id", "", false,
		zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return campsites.Routes(h, mgr)
}

// campsiteDoc mirrors the JSON shape the handlers respond with.
type campsiteDoc struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Comments []struct {
		ID     string `json:"_id"`
		Rating int    `json:"rating"`
		Text   string `json:"text"`
		Author struct {
			ID       string `json:"_id"`
			Username string `json:"username"`
		} `json:"author"`
	} `json:"comments"`
}

func TestList_PopulatesCommentAuthors(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "wanderer")
	campsite := fixtures.CreateCampsite(ctx, "React Lake Campground")
	fixtures.AddComment(ctx, campsite.ID, author.ID, 5, "Wonderful")

	req := httptest.NewRequest("GET", "/campsites", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var got []campsiteDoc
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 1 {
		t.Fatalf("expected 1 campsite, got %d", len(got))
	}
	if len(got[0].Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(got[0].Comments))
	}
	if got[0].Comments[0].Author.Username != "wanderer" {
		t.Errorf("author username: got %q, want %q", got[0].Comments[0].Author.Username, "wanderer")
	}
}

func TestGetByID_MissingRespondsNull(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/campsites/"+primitive.NewObjectID().Hex(), nil)
	req = testutil.WithChiURLParam(req, "campsiteID", primitive.NewObjectID().Hex())
	rec := httptest.NewRecorder()
	handler.GetByID(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Errorf("expected null body, got %q", rec.Body.String())
	}
}

func TestGetByID_MalformedRespondsNull(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/campsites/not-an-id", nil)
	req = testutil.WithChiURLParam(req, "campsiteID", "not-an-id")
	rec := httptest.NewRecorder()
	handler.GetByID(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Errorf("expected null body, got %q", rec.Body.String())
	}
}

func TestCreate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "creator")
	req := testutil.NewJSONRequest(t, "POST", "/campsites", map[string]any{
		"name":        "Chrome River Campground",
		"description": "On the banks of the Chrome River",
		"cost":        55,
	})
	req = testutil.WithUser(req, user)

	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	count, err := fixtures.DB().Collection("campsites").CountDocuments(ctx, bson.M{"name": "Chrome River Campground"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 campsite, got %d", count)
	}
}

func TestCreate_NameRequired(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "creator")
	req := testutil.NewJSONRequest(t, "POST", "/campsites", map[string]any{"description": "nameless"})
	req = testutil.WithUser(req, user)

	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestUpdateByID(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "updater")
	campsite := fixtures.CreateCampsite(ctx, "Before")

	req := testutil.NewJSONRequest(t, "PUT", "/campsites/"+campsite.ID.Hex(), map[string]any{"name": "After"})
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())

	rec := httptest.NewRecorder()
	handler.UpdateByID(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got campsiteDoc
	testutil.DecodeJSON(t, rec, &got)
	if got.Name != "After" {
		t.Errorf("Name: got %q, want %q", got.Name, "After")
	}
}

func TestDeleteByID_RespondsWithDeletedDocument(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "deleter")
	campsite := fixtures.CreateCampsite(ctx, "Doomed")

	req := httptest.NewRequest("DELETE", "/campsites/"+campsite.ID.Hex(), nil)
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())

	rec := httptest.NewRecorder()
	handler.DeleteByID(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var got campsiteDoc
	testutil.DecodeJSON(t, rec, &got)
	if got.ID != campsite.ID.Hex() {
		t.Errorf("ID: got %q, want %q", got.ID, campsite.ID.Hex())
	}
}

func TestDeleteAll_RespondsWithCount(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "deleter")
	fixtures.CreateCampsite(ctx, "One")
	fixtures.CreateCampsite(ctx, "Two")

	req := httptest.NewRequest("DELETE", "/campsites", nil)
	req = testutil.WithUser(req, user)

	rec := httptest.NewRecorder()
	handler.DeleteAll(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var got map[string]int64
	testutil.DecodeJSON(t, rec, &got)
	if got["deletedCount"] != 2 {
		t.Errorf("deletedCount: got %d, want 2", got["deletedCount"])
	}
}

func TestListComments_CampsiteNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	id := primitive.NewObjectID().Hex()
	req := httptest.NewRequest("GET", "/campsites/"+id+"/comments", nil)
	req = testutil.WithChiURLParam(req, "campsiteID", id)

	rec := httptest.NewRecorder()
	handler.ListComments(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var got map[string]string
	testutil.DecodeJSON(t, rec, &got)
	want := "Campsite " + id + " not found"
	if got["message"] != want {
		t.Errorf("message: got %q, want %q", got["message"], want)
	}
}

func TestAddComment_AuthorIsCaller(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "camper")
	other := fixtures.CreateUser(ctx, "impostor")
	campsite := fixtures.CreateCampsite(ctx, "Commented")

	// The body's author claim must be ignored in favor of the caller.
	req := testutil.NewJSONRequest(t, "POST", "/campsites/"+campsite.ID.Hex()+"/comments", map[string]any{
		"rating": 5,
		"text":   "Beautiful views",
		"author": other.ID.Hex(),
	})
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())

	rec := httptest.NewRecorder()
	handler.AddComment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Campsite
	if err := fixtures.DB().Collection("campsites").FindOne(ctx, bson.M{"_id": campsite.ID}).Decode(&stored); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if len(stored.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(stored.Comments))
	}
	if stored.Comments[0].Author != user.ID {
		t.Errorf("author: got %v, want %v", stored.Comments[0].Author, user.ID)
	}
}

func TestAddComment_RatingOutOfRange(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "camper")
	campsite := fixtures.CreateCampsite(ctx, "Rated")

	req := testutil.NewJSONRequest(t, "POST", "/campsites/"+campsite.ID.Hex()+"/comments", map[string]any{
		"rating": 6,
		"text":   "too good",
	})
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())

	rec := httptest.NewRecorder()
	handler.AddComment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestAddComment_SanitizesText(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "camper")
	campsite := fixtures.CreateCampsite(ctx, "Sanitized")

	req := testutil.NewJSONRequest(t, "POST", "/campsites/"+campsite.ID.Hex()+"/comments", map[string]any{
		"rating": 4,
		"text":   `Nice <script>alert("x")</script>spot`,
	})
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())

	rec := httptest.NewRecorder()
	handler.AddComment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Campsite
	if err := fixtures.DB().Collection("campsites").FindOne(ctx, bson.M{"_id": campsite.ID}).Decode(&stored); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if strings.Contains(stored.Comments[0].Text, "<script>") {
		t.Errorf("stored text still contains script tag: %q", stored.Comments[0].Text)
	}
}

func TestAddComment_CampsiteNotFound(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "camper")
	id := primitive.NewObjectID().Hex()

	req := testutil.NewJSONRequest(t, "POST", "/campsites/"+id+"/comments", map[string]any{
		"rating": 3,
		"text":   "nowhere",
	})
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "campsiteID", id)

	rec := httptest.NewRecorder()
	handler.AddComment(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestAddComment_MissingCampsiteBeforeAuthorCheck(t *testing.T) {
	handler, _ := newTestHandler(t)

	// Existence is checked before identity validation: an absent campsite
	// answers 404 even when the caller identity would not parse.
	id := primitive.NewObjectID().Hex()
	req := testutil.NewJSONRequest(t, "POST", "/campsites/"+id+"/comments", map[string]any{
		"rating": 3,
		"text":   "fine",
	})
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-an-id", Username: "broken"})
	req = testutil.WithChiURLParam(req, "campsiteID", id)

	rec := httptest.NewRecorder()
	handler.AddComment(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestAddComment_InvalidAuthorID(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	campsite := fixtures.CreateCampsite(ctx, "Existing")

	req := testutil.NewJSONRequest(t, "POST", "/campsites/"+campsite.ID.Hex()+"/comments", map[string]any{
		"rating": 3,
		"text":   "fine",
	})
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-an-id", Username: "broken"})
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())

	rec := httptest.NewRecorder()
	handler.AddComment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var got map[string]string
	testutil.DecodeJSON(t, rec, &got)
	if got["message"] != "Invalid author ID" {
		t.Errorf("message: got %q, want %q", got["message"], "Invalid author ID")
	}

	// Nothing was persisted.
	var stored models.Campsite
	if err := fixtures.DB().Collection("campsites").FindOne(ctx, bson.M{"_id": campsite.ID}).Decode(&stored); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if len(stored.Comments) != 0 {
		t.Errorf("expected no comments, got %d", len(stored.Comments))
	}
}

func TestAddComment_UppercaseIDSpelling(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "camper")
	campsite := fixtures.CreateCampsite(ctx, "Case Insensitive")

	// ObjectID hex parses case-insensitively; the uppercase spelling must
	// land on the same document (and the same per-campsite lock).
	upper := strings.ToUpper(campsite.ID.Hex())
	req := testutil.NewJSONRequest(t, "POST", "/campsites/"+upper+"/comments", map[string]any{
		"rating": 4,
		"text":   "found it anyway",
	})
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "campsiteID", upper)

	rec := httptest.NewRecorder()
	handler.AddComment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Campsite
	if err := fixtures.DB().Collection("campsites").FindOne(ctx, bson.M{"_id": campsite.ID}).Decode(&stored); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if len(stored.Comments) != 1 {
		t.Errorf("expected 1 comment, got %d", len(stored.Comments))
	}
}

func TestGetComment_NotFound(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	campsite := fixtures.CreateCampsite(ctx, "Empty")
	commentID := primitive.NewObjectID().Hex()

	req := httptest.NewRequest("GET", "/campsites/"+campsite.ID.Hex()+"/comments/"+commentID, nil)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())
	req = testutil.WithChiURLParam(req, "commentID", commentID)

	rec := httptest.NewRecorder()
	handler.GetComment(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var got map[string]string
	testutil.DecodeJSON(t, rec, &got)
	want := "Comment " + commentID + " not found"
	if got["message"] != want {
		t.Errorf("message: got %q, want %q", got["message"], want)
	}
}

func TestUpdateComment_ByAuthor(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "author")
	campsite := fixtures.CreateCampsite(ctx, "Reviewed")
	comment := fixtures.AddComment(ctx, campsite.ID, author.ID, 2, "meh")

	req := testutil.NewJSONRequest(t, "PUT",
		"/campsites/"+campsite.ID.Hex()+"/comments/"+comment.ID.Hex(),
		map[string]any{"rating": 5})
	req = testutil.WithUser(req, author)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())
	req = testutil.WithChiURLParam(req, "commentID", comment.ID.Hex())

	rec := httptest.NewRecorder()
	handler.UpdateComment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Campsite
	if err := fixtures.DB().Collection("campsites").FindOne(ctx, bson.M{"_id": campsite.ID}).Decode(&stored); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if stored.Comments[0].Rating != 5 {
		t.Errorf("rating: got %d, want 5", stored.Comments[0].Rating)
	}
	// Text was absent from the body and must be untouched.
	if stored.Comments[0].Text != "meh" {
		t.Errorf("text: got %q, want %q", stored.Comments[0].Text, "meh")
	}
}

func TestUpdateComment_NonAuthorForbidden(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "author")
	intruder := fixtures.CreateUser(ctx, "intruder")
	campsite := fixtures.CreateCampsite(ctx, "Guarded")
	comment := fixtures.AddComment(ctx, campsite.ID, author.ID, 3, "mine")

	req := testutil.NewJSONRequest(t, "PUT",
		"/campsites/"+campsite.ID.Hex()+"/comments/"+comment.ID.Hex(),
		map[string]any{"rating": 1})
	req = testutil.WithUser(req, intruder)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())
	req = testutil.WithChiURLParam(req, "commentID", comment.ID.Hex())

	rec := httptest.NewRecorder()
	handler.UpdateComment(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}

	var stored models.Campsite
	if err := fixtures.DB().Collection("campsites").FindOne(ctx, bson.M{"_id": campsite.ID}).Decode(&stored); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if stored.Comments[0].Rating != 3 {
		t.Errorf("comment changed by non-author: rating %d", stored.Comments[0].Rating)
	}
}

func TestDeleteComment_NonAuthorForbidden(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "author")
	intruder := fixtures.CreateUser(ctx, "intruder")
	campsite := fixtures.CreateCampsite(ctx, "Guarded")
	comment := fixtures.AddComment(ctx, campsite.ID, author.ID, 4, "keep me")

	req := httptest.NewRequest("DELETE", "/campsites/"+campsite.ID.Hex()+"/comments/"+comment.ID.Hex(), nil)
	req = testutil.WithUser(req, intruder)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())
	req = testutil.WithChiURLParam(req, "commentID", comment.ID.Hex())

	rec := httptest.NewRecorder()
	handler.DeleteComment(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}

	// The comment must survive.
	var stored models.Campsite
	if err := fixtures.DB().Collection("campsites").FindOne(ctx, bson.M{"_id": campsite.ID}).Decode(&stored); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if len(stored.Comments) != 1 {
		t.Errorf("expected 1 comment to survive, got %d", len(stored.Comments))
	}
}

func TestDeleteComment_ByAuthor(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "author")
	campsite := fixtures.CreateCampsite(ctx, "Pruned")
	comment := fixtures.AddComment(ctx, campsite.ID, author.ID, 1, "regret")

	req := httptest.NewRequest("DELETE", "/campsites/"+campsite.ID.Hex()+"/comments/"+comment.ID.Hex(), nil)
	req = testutil.WithUser(req, author)
	req = testutil.WithChiURLParam(req, "campsiteID", campsite.ID.Hex())
	req = testutil.WithChiURLParam(req, "commentID", comment.ID.Hex())

	rec := httptest.NewRecorder()
	handler.DeleteComment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.Campsite
	if err := fixtures.DB().Collection("campsites").FindOne(ctx, bson.M{"_id": campsite.ID}).Decode(&stored); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if len(stored.Comments) != 0 {
		t.Errorf("expected 0 comments, got %d", len(stored.Comments))
	}
}

func TestRoutes_UnsupportedVerbs(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := newTestRouter(t, handler)

	// These verbs answer 403 whether or not the caller is signed in.
	for _, target := range []string{
		"/",
		"/" + primitive.NewObjectID().Hex() + "/comments",
	} {
		req := httptest.NewRequest("PUT", target, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("PUT %s: expected status 403, got %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "operation not supported") {
			t.Errorf("PUT %s: unexpected body %q", target, rec.Body.String())
		}
	}
}

func TestRoutes_MutationsRequireSignIn(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := newTestRouter(t, handler)

	req := testutil.NewJSONRequest(t, "POST", "/", map[string]any{"name": "Sneaky"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}
