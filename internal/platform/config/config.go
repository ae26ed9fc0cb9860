// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Storage Drivers

const (
	// DriverPostgres persists entities in PostgreSQL through pgxpool.
	DriverPostgres = "postgres"

	// DriverMemory keeps entities in process memory. Data is lost on restart.
	DriverMemory = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the game library API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StorageDriver selects the repository backend ("postgres" or "memory").
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL). Required when StorageDriver is "postgres".
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath overrides the embedded SQL migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value store (Redis). Optional; enables the distributed per-user lock.
	RedisURL string `env:"REDIS_URL"`

	// Shared HMAC secret for bearer tokens
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"1h"`

	// OTLP/HTTP collector endpoint. Tracing is disabled when empty.
	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints the struct tags cannot express.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the %q storage driver", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.JWTTTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesPostgres reports whether repositories are backed by PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.StorageDriver == DriverPostgres
}

// OriginAllowed reports whether a CORS origin is in the configured allow-list.
func (c *Config) OriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
