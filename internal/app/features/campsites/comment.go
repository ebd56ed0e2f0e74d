// internal/app/features/campsites/comment.go
package campsites

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trailpost/trailpost/internal/app/system/auth"
	"github.com/trailpost/trailpost/internal/app/system/htmlsanitize"
	"github.com/trailpost/trailpost/internal/app/system/httpjson"
	"github.com/trailpost/trailpost/internal/app/system/timeouts"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// findComment locates a comment in the campsite's embedded array.
func findComment(c *models.Campsite, id primitive.ObjectID) *models.Comment {
	for i := range c.Comments {
		if c.Comments[i].ID == id {
			return &c.Comments[i]
		}
	}
	return nil
}

// loadComment resolves the campsite and comment for a
// /{campsiteID}/comments/{commentID} route, writing the appropriate 404
// when either is missing. Existence is always checked before ownership.
func (h *Handler) loadComment(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Campsite, *models.Comment, bool) {
	rawCampsite := chi.URLParam(r, "campsiteID")
	campID, ok := parseID(rawCampsite)
	if !ok {
		campsiteNotFound(w, rawCampsite)
		return nil, nil, false
	}
	rawComment := chi.URLParam(r, "commentID")
	commentID, ok := parseID(rawComment)
	if !ok {
		commentNotFound(w, rawComment)
		return nil, nil, false
	}

	campsite, err := h.Campsites.GetByID(ctx, campID)
	if err == mongo.ErrNoDocuments {
		campsiteNotFound(w, rawCampsite)
		return nil, nil, false
	}
	if err != nil {
		h.internalError(w, "get campsite", err)
		return nil, nil, false
	}

	comment := findComment(campsite, commentID)
	if comment == nil {
		commentNotFound(w, rawComment)
		return nil, nil, false
	}
	return campsite, comment, true
}

// isAuthor reports whether the authenticated caller owns the comment.
// Identity comparison is canonicalized to ObjectIDs.
func isAuthor(r *http.Request, comment *models.Comment) bool {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	callerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return false
	}
	return comment.Author == callerID
}

// GetComment handles GET /campsites/{campsiteID}/comments/{commentID}.
func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, comment, ok := h.loadComment(ctx, w, r)
	if !ok {
		return
	}

	users, err := h.Users.GetByIDs(ctx, []primitive.ObjectID{comment.Author})
	if err != nil {
		h.internalError(w, "resolve comment author", err)
		return
	}
	httpjson.Write(w, http.StatusOK, buildCommentView(*comment, users))
}

// commentUpdateRequest distinguishes absent fields from zero values:
// only rating/text present in the body are updated.
type commentUpdateRequest struct {
	Rating *int    `json:"rating"`
	Text   *string `json:"text"`
}

// UpdateComment handles PUT /campsites/{campsiteID}/comments/{commentID}.
// Only the comment's author may update it.
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req commentUpdateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		httpjson.Error(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	rawCampsite := chi.URLParam(r, "campsiteID")
	campID, ok := parseID(rawCampsite)
	if !ok {
		campsiteNotFound(w, rawCampsite)
		return
	}

	// Lock on the canonical hex so spelling variants share one lock.
	h.Locks.Lock(campID.Hex())
	defer h.Locks.Unlock(campID.Hex())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	campsite, comment, ok := h.loadComment(ctx, w, r)
	if !ok {
		return
	}
	if !isAuthor(r, comment) {
		httpjson.Error(w, http.StatusForbidden, "not authorized to update this comment")
		return
	}

	set := bson.M{}
	if req.Rating != nil {
		set["rating"] = *req.Rating
	}
	if req.Text != nil {
		set["text"] = htmlsanitize.Sanitize(*req.Text)
	}

	updated, err := h.Campsites.UpdateComment(ctx, campsite.ID, comment.ID, set)
	if err != nil {
		h.internalError(w, "update comment", err)
		return
	}
	if updated == nil {
		commentNotFound(w, chi.URLParam(r, "commentID"))
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// DeleteComment handles DELETE /campsites/{campsiteID}/comments/{commentID}.
// Only the comment's author may delete it.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	rawCampsite := chi.URLParam(r, "campsiteID")
	campID, ok := parseID(rawCampsite)
	if !ok {
		campsiteNotFound(w, rawCampsite)
		return
	}

	h.Locks.Lock(campID.Hex())
	defer h.Locks.Unlock(campID.Hex())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	campsite, comment, ok := h.loadComment(ctx, w, r)
	if !ok {
		return
	}
	if !isAuthor(r, comment) {
		httpjson.Error(w, http.StatusForbidden, "not authorized to delete this comment")
		return
	}

	updated, err := h.Campsites.RemoveComment(ctx, campsite.ID, comment.ID)
	if err != nil {
		h.internalError(w, "delete comment", err)
		return
	}
	if updated == nil {
		// Campsite vanished between the check and the pull.
		campsiteNotFound(w, rawCampsite)
		return
	}

	h.Log.Info("comment deleted",
		zap.String("campsite_id", rawCampsite),
		zap.String("comment_id", comment.ID.Hex()))
	httpjson.Write(w, http.StatusOK, updated)
}
