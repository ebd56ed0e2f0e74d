// internal/app/features/campsites/collection.go
package campsites

import (
	"context"
	"net/http"

	"github.com/trailpost/trailpost/internal/app/system/httpjson"
	"github.com/trailpost/trailpost/internal/app/system/timeouts"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.uber.org/zap"
)

// List handles GET /campsites. Every campsite is returned with its
// comments' author references resolved to full user data.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	campsites, err := h.Campsites.List(ctx)
	if err != nil {
		h.internalError(w, "list campsites", err)
		return
	}

	views, err := h.populate(r.WithContext(ctx), campsites)
	if err != nil {
		h.internalError(w, "resolve comment authors", err)
		return
	}
	httpjson.Write(w, http.StatusOK, views)
}

// createRequest carries the writable campsite fields.
type createRequest struct {
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Elevation   int     `json:"elevation"`
	Cost        float64 `json:"cost"`
	Featured    bool    `json:"featured"`
	Description string  `json:"description"`
}

// Create handles POST /campsites.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "campsite name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Campsites.Create(ctx, models.Campsite{
		Name:        req.Name,
		Image:       req.Image,
		Elevation:   req.Elevation,
		Cost:        req.Cost,
		Featured:    req.Featured,
		Description: req.Description,
	})
	if err != nil {
		h.internalError(w, "create campsite", err)
		return
	}

	h.Log.Info("campsite created",
		zap.String("campsite_id", created.ID.Hex()),
		zap.String("name", created.Name))
	httpjson.Write(w, http.StatusOK, created)
}

// DeleteAll handles DELETE /campsites and responds with the store's
// deletion summary.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Campsites.DeleteAll(ctx)
	if err != nil {
		h.internalError(w, "delete all campsites", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}
