// internal/app/features/campsites/detail.go
package campsites

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trailpost/trailpost/internal/app/system/httpjson"
	"github.com/trailpost/trailpost/internal/app/system/timeouts"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID handles GET /campsites/{campsiteID}. A missing campsite yields
// a 200 with a JSON null body rather than a 404; clients of the original
// surface depend on that shape.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "campsiteID"))
	if !ok {
		httpjson.Write(w, http.StatusOK, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	campsite, err := h.Campsites.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Write(w, http.StatusOK, nil)
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
	httpjson.Write(w, http.StatusOK, views[0])
}

// updateRequest carries the replaceable campsite fields; only fields
// present in the body are written.
type updateRequest struct {
	Name        *string  `json:"name"`
	Image       *string  `json:"image"`
	Elevation   *int     `json:"elevation"`
	Cost        *float64 `json:"cost"`
	Featured    *bool    `json:"featured"`
	Description *string  `json:"description"`
}

func (req *updateRequest) fields() bson.M {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Image != nil {
		set["image"] = *req.Image
	}
	if req.Elevation != nil {
		set["elevation"] = *req.Elevation
	}
	if req.Cost != nil {
		set["cost"] = *req.Cost
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	return set
}

// UpdateByID handles PUT /campsites/{campsiteID}: replaces the matching
// fields from the body and returns the updated document.
func (h *Handler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "campsiteID"))
	if !ok {
		httpjson.Write(w, http.StatusOK, nil)
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Campsites.UpdateByID(ctx, id, req.fields())
	if err != nil {
		h.internalError(w, "update campsite", err)
		return
	}
	// nil when absent: mirror GetByID's null-body shape.
	httpjson.Write(w, http.StatusOK, updated)
}

// DeleteByID handles DELETE /campsites/{campsiteID} and responds with
// the deleted document (or null when there was none).
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "campsiteID"))
	if !ok {
		httpjson.Write(w, http.StatusOK, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Campsites.DeleteByID(ctx, id)
	if err != nil {
		h.internalError(w, "delete campsite", err)
		return
	}
	httpjson.Write(w, http.StatusOK, deleted)
}
