// internal/app/features/favorites/routes.go
package favorites

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trailpost/trailpost/internal/app/system/auth"
	"github.com/trailpost/trailpost/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routes returns the subrouter for the favorites resource; mounted under
// /favorites. Everything here is about the caller's own list, so every
// supported verb requires a signed-in user.
func Routes(h *Handler, m *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.With(m.RequireSignedIn).Get("/", h.Get)
	r.With(m.RequireSignedIn).Post("/", h.Post)
	r.Put("/", notSupported)
	r.With(m.RequireSignedIn).Delete("/", h.Delete)

	r.Route("/{campsiteID}", func(r chi.Router) {
		// Reading single-favorite membership is not supported.
		r.Get("/", notSupported)
		r.With(m.RequireSignedIn).Post("/", h.PostOne)
		r.Put("/", notSupported)
		r.With(m.RequireSignedIn).Delete("/", h.DeleteOne)
	})

	return r
}

func notSupported(w http.ResponseWriter, r *http.Request) {
	httpjson.MethodNotSupported(w, r.Method, r.URL.Path)
}

// parseCampsiteParam parses {campsiteID}, writing a 400 when it is not a
// well-formed id. Membership comparisons only ever see canonical
// ObjectIDs.
func parseCampsiteParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "campsiteID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid campsite id")
		return primitive.NilObjectID, false
	}
	return id, true
}
