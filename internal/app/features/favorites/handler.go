// internal/app/features/favorites/handler.go
package favorites

import (
	"context"
	"net/http"
	"time"

	campsitestore "github.com/trailpost/trailpost/internal/app/store/campsites"
	favoritestore "github.com/trailpost/trailpost/internal/app/store/favorites"
	userstore "github.com/trailpost/trailpost/internal/app/store/users"
	"github.com/trailpost/trailpost/internal/app/system/auth"
	"github.com/trailpost/trailpost/internal/app/system/httpjson"
	"github.com/trailpost/trailpost/internal/app/system/timeouts"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	noticeNoFavorites    = "You do not have any favorites to delete."
	noticeAlreadyPresent = "That campsite is already in the list of favorites!"
	noticeNotInFavorites = "Campsite not found in favorites."
)

// Handler serves the per-user favorite-campsite list.
type Handler struct {
	Favorites *favoritestore.Store
	Campsites *campsitestore.Store
	Users     *userstore.Store
	Log       *zap.Logger
}

// NewHandler constructs a favorites Handler over the given database.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Favorites: favoritestore.New(db),
		Campsites: campsitestore.New(db),
		Users:     userstore.New(db),
		Log:       logger,
	}
}

// currentUserID returns the authenticated caller's id as an ObjectID.
// The Require* middleware guarantees a user is present; the parse can
// only fail for a hand-injected malformed test identity.
func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	return id, err == nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| View: favorite with user and campsites resolved                             |
*─────────────────────────────────────────────────────────────────────────────*/

type userView struct {
	ID        primitive.ObjectID `json:"_id"`
	Username  string             `json:"username"`
	FirstName string             `json:"firstname,omitempty"`
	LastName  string             `json:"lastname,omitempty"`
}

type favoriteView struct {
	ID        primitive.ObjectID `json:"_id"`
	User      userView           `json:"user"`
	Campsites []models.Campsite  `json:"campsites"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (h *Handler) populate(ctx context.Context, f *models.Favorite) (*favoriteView, error) {
	view := &favoriteView{
		ID:        f.ID,
		User:      userView{ID: f.User},
		Campsites: []models.Campsite{},
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}

	if u, err := h.Users.GetByID(ctx, f.User); err == nil {
		view.User.Username = u.Username
		view.User.FirstName = u.FirstName
		view.User.LastName = u.LastName
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	campsites, err := h.Campsites.GetByIDs(ctx, f.Campsites)
	if err != nil {
		return nil, err
	}
	view.Campsites = campsites
	return view, nil
}

func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.Log.Error(op, zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "internal server error")
}

/*─────────────────────────────────────────────────────────────────────────────*
| Collection routes (/favorites)                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// Get handles GET /favorites: the caller's favorite document with user
// and campsites resolved, or a JSON null when the caller has none.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not logged in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fav, err := h.Favorites.GetByUser(ctx, userID)
	if err == mongo.ErrNoDocuments {
		httpjson.Write(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		h.internalError(w, "get favorites", err)
		return
	}

	view, err := h.populate(ctx, fav)
	if err != nil {
		h.internalError(w, "resolve favorites", err)
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

// campsiteRef is one element of the POST /favorites body: a campsite
// reference carrying its id.
type campsiteRef struct {
	ID string `json:"_id"`
}

// Post handles POST /favorites. The body is a sequence of campsite
// references; ids the caller already has are skipped, and a favorite
// document is created when none exists yet.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var refs []campsiteRef
	if err := httpjson.Decode(r, &refs); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(refs))
	for _, ref := range refs {
		id, err := primitive.ObjectIDFromHex(ref.ID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid campsite id")
			return
		}
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fav, err := h.Favorites.AddCampsites(ctx, userID, ids)
	if err != nil {
		h.internalError(w, "add favorites", err)
		return
	}
	if fav == nil {
		if fav, err = h.Favorites.Create(ctx, userID, ids); err != nil {
			h.internalError(w, "create favorites", err)
			return
		}
		h.Log.Info("favorite created", zap.String("user_id", userID.Hex()))
	}
	httpjson.Write(w, http.StatusOK, fav)
}

// Delete handles DELETE /favorites. Deleting when the caller has no
// favorite document is not an error: it answers a plain-text notice and
// stops there.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not logged in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Favorites.DeleteByUser(ctx, userID)
	if err != nil {
		h.internalError(w, "delete favorites", err)
		return
	}
	if deleted == nil {
		httpjson.Text(w, http.StatusOK, noticeNoFavorites)
		return
	}
	httpjson.Write(w, http.StatusOK, deleted)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Single-campsite routes (/favorites/{campsiteID})                            |
*─────────────────────────────────────────────────────────────────────────────*/

// PostOne handles POST /favorites/{campsiteID}: adds one campsite id to
// the caller's favorites, creating the document when none exists.
func (h *Handler) PostOne(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not logged in")
		return
	}
	campsiteID, ok := parseCampsiteParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fav, err := h.Favorites.GetByUser(ctx, userID)
	if err != nil && err != mongo.ErrNoDocuments {
		h.internalError(w, "get favorites", err)
		return
	}

	if fav == nil {
		created, err := h.Favorites.Create(ctx, userID, []primitive.ObjectID{campsiteID})
		if err != nil {
			h.internalError(w, "create favorites", err)
			return
		}
		h.Log.Info("favorite created", zap.String("user_id", userID.Hex()))
		httpjson.Write(w, http.StatusOK, created)
		return
	}

	if fav.Contains(campsiteID) {
		httpjson.Text(w, http.StatusOK, noticeAlreadyPresent)
		return
	}

	updated, err := h.Favorites.AddCampsites(ctx, userID, []primitive.ObjectID{campsiteID})
	if err != nil {
		h.internalError(w, "add favorite", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// DeleteOne handles DELETE /favorites/{campsiteID}: removes one id from
// the caller's favorites. Absent ids and absent documents both answer a
// plain-text notice.
func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not logged in")
		return
	}
	campsiteID, ok := parseCampsiteParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fav, err := h.Favorites.GetByUser(ctx, userID)
	if err == mongo.ErrNoDocuments {
		httpjson.Text(w, http.StatusOK, noticeNoFavorites)
		return
	}
	if err != nil {
		h.internalError(w, "get favorites", err)
		return
	}
	if !fav.Contains(campsiteID) {
		httpjson.Text(w, http.StatusOK, noticeNotInFavorites)
		return
	}

	updated, err := h.Favorites.RemoveCampsite(ctx, userID, campsiteID)
	if err != nil {
		h.internalError(w, "remove favorite", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}
