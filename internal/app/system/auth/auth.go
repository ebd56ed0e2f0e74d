// Package auth verifies bearer tokens, issues tokens, and manages the
// session cookie used by the signup/logout flow.
//
// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely
//     identifies a user record. Token subjects carry its hex form.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/trailpost/trailpost/internal/app/system/httpjson"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is what we inject into r.Context() after a verified
// bearer token (or test hook).
type SessionUser struct {
	ID       string
	Username string
	Admin    bool
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing token
// verification. For handler tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// UserFetcher loads fresh user data for a verified token subject on each
// request, so disabled accounts and role changes take effect immediately.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

// Manager issues and verifies bearer tokens and owns the cookie session
// store used by the signup/logout flow.
type Manager struct {
	tokenKey    []byte
	tokenExpiry time.Duration
	store       *sessions.CookieStore
	sessionName string
	fetcher     UserFetcher
	log         *zap.Logger
}

// NewManager builds a Manager from config. The token key signs bearer
// tokens (HS256); the session key signs the session cookie. The `secure`
// flag controls whether cookies are marked Secure and which SameSite
// mode is used: in production (secure=true) cookies are Secure +
// SameSite=None, in local dev over http://localhost Lax is fine.
func NewManager(tokenKey string, tokenExpiry time.Duration, sessionKey, sessionName, sessionDomain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if tokenKey == "" {
		return nil, fmt.Errorf("token key is empty; provide ≥32 random chars")
	}
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(tokenKey) < 32 || len(sessionKey) < 32 {
		logger.Warn("auth key is short; 32+ chars recommended")
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   sessionDomain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("auth manager initialized",
		zap.Bool("secure", secure),
		zap.String("session_name", sessionName),
		zap.Duration("token_expiry", tokenExpiry))

	return &Manager{
		tokenKey:    []byte(tokenKey),
		tokenExpiry: tokenExpiry,
		store:       store,
		sessionName: sessionName,
		log:         logger,
	}, nil
}

// SetUserFetcher installs the fetcher used by LoadTokenUser. Without a
// fetcher, bearer tokens are verified but carry only the user id.
func (m *Manager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

/*─────────────────────────────────────────────────────────────────────────────*
| Bearer tokens                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// IssueToken signs a bearer token whose subject is the user's id.
func (m *Manager) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenExpiry)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.tokenKey)
}

// VerifyToken parses and validates a bearer token, returning the user id
// it was issued for.
func (m *Manager) VerifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.tokenKey, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

// LoadTokenUser injects the user into context when the request carries a
// valid bearer token. Requests without one pass through untouched; the
// Require* middleware decides what to do about that.
func (m *Manager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.VerifyToken(token)
		if err != nil {
			m.log.Debug("bearer token rejected", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		u := &SessionUser{ID: userID}
		if m.fetcher != nil {
			fetched := m.fetcher.FetchUser(r.Context(), userID)
			if fetched == nil {
				// Token is valid but the account is gone or disabled.
				next.ServeHTTP(w, r)
				return
			}
			u = fetched
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by
// LoadTokenUser). API callers without one get a 401 JSON error.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "not logged in")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin ensures the user in context has the admin flag.
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "not logged in")
			return
		}
		if !u.Admin {
			httpjson.Error(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session cookie (signup/login continuation, logout)                         |
*─────────────────────────────────────────────────────────────────────────────*/

// GetSession returns the request's session, creating a new one if the
// cookie is absent or fails to decode.
func (m *Manager) GetSession(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.sessionName)
}

// Store exposes the underlying cookie store; the logout flow needs its
// options so the deletion cookie matches the original settings.
func (m *Manager) Store() *sessions.CookieStore {
	return m.store
}

// EstablishSession marks the session authenticated for the given user and
// writes the cookie.
func (m *Manager) EstablishSession(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess, err := m.GetSession(r)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			// A stale or tampered cookie; start fresh.
			m.log.Warn("session cookie invalid, using fresh session",
				zap.Error(err),
				zap.String("user_id", u.ID))
		} else {
			m.log.Error("session store error, using fresh session",
				zap.Error(err),
				zap.String("user_id", u.ID))
		}
	}
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	return sess.Save(r, w)
}

// HasSession reports whether the request carries an authenticated session
// cookie.
func (m *Manager) HasSession(r *http.Request) bool {
	sess, err := m.GetSession(r)
	if err != nil {
		return false
	}
	isAuth, _ := sess.Values[isAuthKey].(bool)
	return isAuth
}

// DestroySession expires the session cookie immediately.
func (m *Manager) DestroySession(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.GetSession(r)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid during logout", zap.Error(err))
		} else {
			m.log.Error("session store error during logout", zap.Error(err))
		}
	}

	// Ensure the deletion-cookie matches the original store settings.
	if opts := m.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1 // delete immediately

	return sess.Save(r, w)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
