// internal/app/features/campsites/routes.go
package campsites

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trailpost/trailpost/internal/app/system/auth"
	"github.com/trailpost/trailpost/internal/app/system/httpjson"
)

// Routes returns the subrouter for the campsite resource; mounted under
// /campsites.
//
// Reads are public. Mutations require a signed-in user. The verbs the
// resource deliberately rejects answer 403 regardless of auth state.
func Routes(h *Handler, m *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.With(m.RequireSignedIn).Post("/", h.Create)
	r.Put("/", notSupported)
	r.With(m.RequireSignedIn).Delete("/", h.DeleteAll)

	r.Route("/{campsiteID}", func(r chi.Router) {
		r.Get("/", h.GetByID)
		r.Post("/", notSupported)
		r.With(m.RequireSignedIn).Put("/", h.UpdateByID)
		r.With(m.RequireSignedIn).Delete("/", h.DeleteByID)

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", h.ListComments)
			r.With(m.RequireSignedIn).Post("/", h.AddComment)
			r.Put("/", notSupported)
			r.With(m.RequireSignedIn).Delete("/", h.ClearComments)

			r.Route("/{commentID}", func(r chi.Router) {
				r.Get("/", h.GetComment)
				r.Post("/", notSupported)
				r.With(m.RequireSignedIn).Put("/", h.UpdateComment)
				r.With(m.RequireSignedIn).Delete("/", h.DeleteComment)
			})
		})
	})

	return r
}

func notSupported(w http.ResponseWriter, r *http.Request) {
	httpjson.MethodNotSupported(w, r.Method, r.URL.Path)
}
