// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Category delete policies. They decide what happens to posts that still
// reference a category when it is deleted.
const (
	DeletePolicyBlock   = "block"   // refuse deletion while posts reference it
	DeletePolicyDetach  = "detach"  // clear categoryId on referencing posts
	DeletePolicyCascade = "cascade" // delete referencing posts
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	Env string // "development", "production", "testing"

	// Remote resource API consumed by the stores.
	APIBaseURL string

	// Mock resource API server.
	MockHost  string
	MockPort  string
	MockStore string // "memory" or "postgres"
	MockFile  string // db.json path for the memory store ("" = no persistence)

	// PostgreSQL connection for the mock API's postgres backend.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible) connection for the valkey session backend.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Session persistence: "file" or "valkey".
	SessionBackend string
	SessionFile    string

	// Image host (imgbb-compatible upload endpoint).
	ImageHostURL string
	ImageHostKey string

	// Referential-integrity policy for category deletion.
	CategoryDeletePolicy string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Env: envOrDefault("APP_ENV", "development"),

		APIBaseURL: envOrDefault("API_BASE_URL", "http://localhost:5000"),

		MockHost:  envOrDefault("MOCK_HOST", "0.0.0.0"),
		MockPort:  envOrDefault("MOCK_PORT", "5000"),
		MockStore: envOrDefault("MOCK_STORE", "memory"),
		MockFile:  envOrDefault("MOCK_FILE", "db.json"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "quillpress"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "quillpress"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		SessionBackend: envOrDefault("SESSION_BACKEND", "file"),
		SessionFile:    envOrDefault("SESSION_FILE", defaultSessionFile()),

		ImageHostURL: envOrDefault("IMAGE_HOST_URL", "https://api.imgbb.com/1/upload"),
		ImageHostKey: os.Getenv("IMAGE_HOST_KEY"),

		CategoryDeletePolicy: envOrDefault("CATEGORY_DELETE_POLICY", DeletePolicyBlock),
	}

	switch cfg.CategoryDeletePolicy {
	case DeletePolicyBlock, DeletePolicyDetach, DeletePolicyCascade:
	default:
		return nil, fmt.Errorf("CATEGORY_DELETE_POLICY must be one of block, detach, cascade (got %q)", cfg.CategoryDeletePolicy)
	}

	switch cfg.MockStore {
	case "memory", "postgres":
	default:
		return nil, fmt.Errorf("MOCK_STORE must be memory or postgres (got %q)", cfg.MockStore)
	}

	switch cfg.SessionBackend {
	case "file", "valkey":
	default:
		return nil, fmt.Errorf("SESSION_BACKEND must be file or valkey (got %q)", cfg.SessionBackend)
	}

	if cfg.Env == "production" && cfg.MockStore == "postgres" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string for the mock API backend.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// MockAddr returns the mock server listen address (host:port).
func (c *Config) MockAddr() string {
	return fmt.Sprintf("%s:%s", c.MockHost, c.MockPort)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// defaultSessionFile places the session cache under the user config
// directory, falling back to the working directory when unavailable.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "auth-storage.json"
	}
	return filepath.Join(dir, "quillpress", "auth-storage.json")
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
