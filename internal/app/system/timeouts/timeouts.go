// Package timeouts provides centralized timeout values for handler
// operations.
//
// Handlers wrap every store call in context.WithTimeout using one of
// these values. Keeping them in one place makes it easy to tune the
// whole API at once.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and writes
//   - Medium: list queries and multi-step read/write sequences
package timeouts

import (
	"os"
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and multi-step sequences.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Config holds timeout overrides. Zero values are ignored.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
}

// Configure sets custom timeout values during startup, before handlers
// are registered. Zero values keep the current settings.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, and TIMEOUT_MEDIUM
// (duration strings like "5s") and applies any that parse. It returns the
// number of values applied.
func ConfigureFromEnv() int {
	cfg := Config{}
	applied := 0
	if d := envDuration("TIMEOUT_PING"); d > 0 {
		cfg.Ping = d
		applied++
	}
	if d := envDuration("TIMEOUT_SHORT"); d > 0 {
		cfg.Short = d
		applied++
	}
	if d := envDuration("TIMEOUT_MEDIUM"); d > 0 {
		cfg.Medium = d
		applied++
	}
	Configure(cfg)
	return applied
}

func envDuration(name string) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
