// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/trailpost/trailpost/internal/app/system/auth"
)

// Routes returns the subrouter for account endpoints; mounted under
// /users.
func Routes(h *Handler, m *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.With(m.RequireSignedIn, m.RequireAdmin).Get("/", h.List)
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)

	return r
}
