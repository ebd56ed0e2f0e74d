// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	campsitesfeature "github.com/trailpost/trailpost/internal/app/features/campsites"
	favoritesfeature "github.com/trailpost/trailpost/internal/app/features/favorites"
	healthfeature "github.com/trailpost/trailpost/internal/app/features/health"
	usersfeature "github.com/trailpost/trailpost/internal/app/features/users"
	userstore "github.com/trailpost/trailpost/internal/app/store/users"
	"github.com/trailpost/trailpost/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Trailpost mounts the health endpoint plus the three JSON API areas:
// campsites (with nested comments), per-user favorites, and users/auth.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the auth manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	authMgr, err := auth.NewManager(appCfg.TokenKey, appCfg.TokenExpiry, appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("auth manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadTokenUser fetches fresh user data on each request.
	// This ensures role changes and deleted accounts take effect immediately.
	authMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context for a valid
	// bearer token. This makes the current user available to all handlers
	// via auth.CurrentUser(r).
	r.Use(authMgr.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	campsitesHandler := campsitesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/campsites", campsitesfeature.Routes(campsitesHandler, authMgr))

	favoritesHandler := favoritesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/favorites", favoritesfeature.Routes(favoritesHandler, authMgr))

	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, authMgr, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, authMgr))

	return r, nil
}
