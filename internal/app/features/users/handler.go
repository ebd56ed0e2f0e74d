// internal/app/features/users/handler.go
package users

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely
//     identifies a user record
//   - Username: the unique human-readable string users type to log in

import (
	"context"
	"net/http"

	userstore "github.com/trailpost/trailpost/internal/app/store/users"
	"github.com/trailpost/trailpost/internal/app/system/auth"
	"github.com/trailpost/trailpost/internal/app/system/httpjson"
	"github.com/trailpost/trailpost/internal/app/system/timeouts"
	"github.com/trailpost/trailpost/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves account management: listing (admin), signup, login,
// and logout.
type Handler struct {
	Users *userstore.Store
	Auth  *auth.Manager
	Log   *zap.Logger
}

// NewHandler constructs a users Handler over the given database and
// auth manager.
func NewHandler(db *mongo.Database, m *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Auth:  m,
		Log:   logger,
	}
}

// List handles GET /users. Admin only; password hashes never serialize.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("list users", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpjson.Write(w, http.StatusOK, users)
}

// signupRequest is the JSON body for POST /users/signup.
type signupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// Signup handles POST /users/signup. Unlike every other route, failures
// here are formatted locally as a 500 with the raw error payload; that
// is the contract clients of the original surface expect.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"err": err.Error()})
		return
	}
	if req.Password == "" {
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"err": "password is required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"err": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"err": err.Error()})
		return
	}

	// Session continuation: the fresh account is signed in immediately.
	if err := h.Auth.EstablishSession(w, r, &auth.SessionUser{
		ID:       created.ID.Hex(),
		Username: created.Username,
	}); err != nil {
		h.Log.Warn("signup: establish session", zap.Error(err))
	}

	h.Log.Info("user registered",
		zap.String("user_id", created.ID.Hex()),
		zap.String("username", created.Username))
	httpjson.Write(w, http.StatusOK, map[string]any{
		"success": true,
		"status":  "Registration Successful!",
	})
}

// loginRequest is the JSON body for POST /users/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /users/login: verifies credentials and issues a
// bearer token tied to the user's identity.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByUsername(ctx, req.Username)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		h.Log.Error("login: lookup user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httpjson.Error(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.Auth.IssueToken(user.ID.Hex())
	if err != nil {
		h.Log.Error("login: issue token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Auth.EstablishSession(w, r, &auth.SessionUser{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Admin:    user.Admin,
	}); err != nil {
		h.Log.Warn("login: establish session", zap.Error(err))
	}

	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"status":  "You are successfully logged in!",
	})
}

// Logout handles GET /users/logout: destroys the session, clears the
// cookie, and redirects home. Without a session it fails with a 401.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !h.Auth.HasSession(r) {
		httpjson.Error(w, http.StatusUnauthorized, "You are not logged in!")
		return
	}
	if err := h.Auth.DestroySession(w, r); err != nil {
		h.Log.Error("logout: destroy session", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
