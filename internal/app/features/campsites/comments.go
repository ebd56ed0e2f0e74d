// internal/app/features/campsites/comments.go
package campsites

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/trailpost/trailpost/internal/app/system/auth"
	"github.com/trailpost/trailpost/internal/app/system/htmlsanitize"
	"github.com/trailpost/trailpost/internal/app/system/httpjson"
	"github.com/trailpost/trailpost/internal/app/system/timeouts"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func campsiteNotFound(w http.ResponseWriter, raw string) {
	httpjson.Error(w, http.StatusNotFound, fmt.Sprintf("Campsite %s not found", raw))
}

func commentNotFound(w http.ResponseWriter, raw string) {
	httpjson.Error(w, http.StatusNotFound, fmt.Sprintf("Comment %s not found", raw))
}

// ListComments handles GET /campsites/{campsiteID}/comments: the comment
// list with authors resolved, or 404 when the campsite is absent.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "campsiteID")
	id, ok := parseID(raw)
	if !ok {
		campsiteNotFound(w, raw)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	campsite, err := h.Campsites.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		campsiteNotFound(w, raw)
		return
	}
	if err != nil {
		h.internalError(w, "get campsite", err)
		return
	}

	views, err := h.populate(r.WithContext(ctx), []models.Campsite{*campsite})
	if err != nil {
		h.internalError(w, "resolve comment authors", err)
		return
	}
	httpjson.Write(w, http.StatusOK, views[0].Comments)
}

// commentRequest carries the writable comment fields.
type commentRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// AddComment handles POST /campsites/{campsiteID}/comments. The author
// is always the authenticated caller; whatever the body claims is
// ignored.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "campsiteID")
	id, ok := parseID(raw)
	if !ok {
		campsiteNotFound(w, raw)
		return
	}

	var req commentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		httpjson.Error(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	text := htmlsanitize.Sanitize(req.Text)
	if text == "" {
		httpjson.Error(w, http.StatusBadRequest, "comment text is required")
		return
	}

	// Serialize the existence check and append per campsite so two
	// concurrent comment posts cannot interleave. The key is the parsed
	// id's canonical hex so spelling variants share one lock.
	h.Locks.Lock(id.Hex())
	defer h.Locks.Unlock(id.Hex())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Existence before any identity validation.
	if _, err := h.Campsites.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			campsiteNotFound(w, raw)
			return
		}
		h.internalError(w, "get campsite", err)
		return
	}

	user, _ := auth.CurrentUser(r)
	author, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid author ID")
		return
	}

	now := time.Now()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Rating:    req.Rating,
		Text:      text,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	updated, err := h.Campsites.AddComment(ctx, id, comment)
	if err != nil {
		h.internalError(w, "add comment", err)
		return
	}
	if updated == nil {
		campsiteNotFound(w, raw)
		return
	}

	h.Log.Info("comment added",
		zap.String("campsite_id", raw),
		zap.String("comment_id", comment.ID.Hex()),
		zap.String("author_id", user.ID))
	httpjson.Write(w, http.StatusOK, updated)
}

// ClearComments handles DELETE /campsites/{campsiteID}/comments: removes
// every comment and responds with the emptied campsite.
func (h *Handler) ClearComments(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "campsiteID")
	id, ok := parseID(raw)
	if !ok {
		campsiteNotFound(w, raw)
		return
	}

	h.Locks.Lock(id.Hex())
	defer h.Locks.Unlock(id.Hex())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Campsites.ClearComments(ctx, id)
	if err != nil {
		h.internalError(w, "clear comments", err)
		return
	}
	if updated == nil {
		campsiteNotFound(w, raw)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}
