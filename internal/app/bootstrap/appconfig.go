// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (HTTP ports, TLS, logging, CORS, request
// limits); AppConfig is everything specific to this service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer token configuration
	TokenKey    string        // Secret key for signing bearer tokens (must be strong in production)
	TokenExpiry time.Duration // Lifetime of an issued bearer token

	// Session cookie configuration (signup/logout flow)
	SessionKey    string // Secret key for signing session cookies
	SessionName   string // Cookie name for sessions (default: session-id)
	SessionDomain string // Cookie domain (blank means current host)
}
