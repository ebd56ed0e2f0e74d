// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Trailpost.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_key, etc.
//   - Environment variables: TRAILPOST_MONGO_URI, TRAILPOST_TOKEN_KEY, etc.
//   - Command-line flags: --mongo_uri, --token_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "trailpost", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "token_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing key (must be strong in production)"},
	{Name: "token_expiry", Default: "24h", Desc: "Bearer token lifetime (e.g., 1h, 24h)"},

	{Name: "session_key", Default: "dev-only-change-me-please-FEDCBA9876543210", Desc: "Session cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: "session-id", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TRAILPOST", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenKey:    appValues.String("token_key"),
		TokenExpiry: appValues.Duration("token_expiry", 24*time.Hour),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Trailpost validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and refuses the dev-only
// signing keys outside of dev.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.TokenKey == "" || appCfg.TokenKey == "dev-only-change-me-please-0123456789ABCDEF" {
			return fmt.Errorf("token_key must be set to a strong value in production")
		}
		if appCfg.SessionKey == "" || appCfg.SessionKey == "dev-only-change-me-please-FEDCBA9876543210" {
			return fmt.Errorf("session_key must be set to a strong value in production")
		}
	}

	if appCfg.TokenExpiry <= 0 {
		return fmt.Errorf("token_expiry must be positive")
	}

	return nil
}
