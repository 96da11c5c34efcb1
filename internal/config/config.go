// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is "json" for machine-readable output or "text" for colored
	// console output.
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server. Set CORS_ORIGINS to a comma-separated
	// list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// StorageDriver selects the key-value backend: postgres, sqlite or memory.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string `env:"DATABASE_URL"`

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/travel.db"`

	// SessionDuration is how long a login stays valid without "remember me".
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"24h"`

	// PasswordHashing is "bcrypt", or "plaintext" to keep passwords readable
	// by older browser exports.
	PasswordHashing string `env:"PASSWORD_HASHING" envDefault:"bcrypt"`

	// MaxBodyBytes caps the size of request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads configuration from the process environment and returns a Config.
// Returns an error listing any required variables that are not set, or naming
// the first variable with an invalid value.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom is Load over an explicit environment, for tests and tools.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.CORSOrigins = trimList(cfg.CORSOrigins)

	if err := oneOf("LOG_FORMAT", cfg.LogFormat, "json", "text"); err != nil {
		return Config{}, err
	}
	if err := oneOf("STORAGE_DRIVER", cfg.StorageDriver, DriverPostgres, DriverSQLite, DriverMemory); err != nil {
		return Config{}, err
	}
	if err := oneOf("PASSWORD_HASHING", cfg.PasswordHashing, "bcrypt", "plaintext"); err != nil {
		return Config{}, err
	}
	if cfg.SessionDuration <= 0 {
		return Config{}, fmt.Errorf("SESSION_DURATION must be positive, got %s", cfg.SessionDuration)
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}

	var missing []string
	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			missing = append(missing, "SQLITE_PATH")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func oneOf(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", name, strings.Join(allowed, ", "), value)
}

// trimList trims each entry, ignoring empty ones.
func trimList(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
