// internal/app/features/campsites/handler.go
package campsites

import (
	"net/http"
	"time"

	campsitestore "github.com/trailpost/trailpost/internal/app/store/campsites"
	userstore "github.com/trailpost/trailpost/internal/app/store/users"
	"github.com/trailpost/trailpost/internal/app/system/httpjson"
	"github.com/trailpost/trailpost/internal/app/system/keyedmutex"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the campsite resource and its embedded comment
// sub-resource.
type Handler struct {
	Campsites *campsitestore.Store
	Users     *userstore.Store
	Locks     *keyedmutex.KeyedMutex
	Log       *zap.Logger
}

// NewHandler constructs a campsites Handler over the given database.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Campsites: campsitestore.New(db),
		Users:     userstore.New(db),
		Locks:     keyedmutex.New(),
		Log:       logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| View types: campsites with comment authors resolved to user data            |
*─────────────────────────────────────────────────────────────────────────────*/

type authorView struct {
	ID        primitive.ObjectID `json:"_id"`
	Username  string             `json:"username"`
	FirstName string             `json:"firstname,omitempty"`
	LastName  string             `json:"lastname,omitempty"`
}

type commentView struct {
	ID        primitive.ObjectID `json:"_id"`
	Rating    int                `json:"rating"`
	Text      string             `json:"text"`
	Author    authorView         `json:"author"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type campsiteView struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Image       string             `json:"image,omitempty"`
	Elevation   int                `json:"elevation,omitempty"`
	Cost        float64            `json:"cost,omitempty"`
	Featured    bool               `json:"featured"`
	Description string             `json:"description,omitempty"`
	Comments    []commentView      `json:"comments"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// populate resolves every comment's author reference to full user data
// for the given campsites, in one users query.
func (h *Handler) populate(r *http.Request, campsites []models.Campsite) ([]campsiteView, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, c := range campsites {
		for _, cm := range c.Comments {
			idSet[cm.Author] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := h.Users.GetByIDs(r.Context(), ids)
	if err != nil {
		return nil, err
	}

	views := make([]campsiteView, 0, len(campsites))
	for _, c := range campsites {
		views = append(views, buildCampsiteView(c, users))
	}
	return views, nil
}

func buildCampsiteView(c models.Campsite, users map[primitive.ObjectID]models.User) campsiteView {
	comments := make([]commentView, 0, len(c.Comments))
	for _, cm := range c.Comments {
		comments = append(comments, buildCommentView(cm, users))
	}
	return campsiteView{
		ID:          c.ID,
		Name:        c.Name,
		Image:       c.Image,
		Elevation:   c.Elevation,
		Cost:        c.Cost,
		Featured:    c.Featured,
		Description: c.Description,
		Comments:    comments,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func buildCommentView(cm models.Comment, users map[primitive.ObjectID]models.User) commentView {
	// A comment whose author account was deleted keeps the bare id.
	author := authorView{ID: cm.Author}
	if u, ok := users[cm.Author]; ok {
		author.Username = u.Username
		author.FirstName = u.FirstName
		author.LastName = u.LastName
	}
	return commentView{
		ID:        cm.ID,
		Rating:    cm.Rating,
		Text:      cm.Text,
		Author:    author,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Shared request plumbing                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// parseID parses an ObjectID path parameter. A malformed id can never
// match a stored document, so callers treat a parse failure exactly like
// not-found (the store would answer the same way).
func parseID(raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	return id, err == nil
}

func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.Log.Error(op, zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "internal server error")
}
