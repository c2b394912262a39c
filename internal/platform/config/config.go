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

Optional infrastructure is selected by presence: an empty REDIS_URL runs the
cache in-process, an empty RESEND_API_KEY logs reset links instead of mailing them.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the address book API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// HTTP edge. Development allows any origin.
	CORSAllowedOrigin string  `env:"CORS_ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`
	RateLimitRPS      float64 `env:"RATE_LIMIT_RPS"      envDefault:"50"`
	RateLimitBurst    int     `env:"RATE_LIMIT_BURST"    envDefault:"100"`

	// Relational Database (PostgreSQL)
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Cache. RedisURL is optional; see package doc.
	RedisURL       string        `env:"REDIS_URL"`
	CacheTTL       time.Duration `env:"CACHE_TTL"        envDefault:"10m"`
	CacheOpTimeout time.Duration `env:"CACHE_OP_TIMEOUT" envDefault:"250ms"`
	CacheCapacity  int           `env:"CACHE_CAPACITY"   envDefault:"10000"`

	// Identity
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`
	BcryptCost     int    `env:"BCRYPT_COST" envDefault:"10"`

	// AppBaseURL prefixes the password reset link sent by email.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// Transactional email (Resend)
	ResendAPIKey string `env:"RESEND_API_KEY"`
	MailFrom     string `env:"MAIL_FROM"      envDefault:"noreply@addressbook.app"`
	MailFromName string `env:"MAIL_FROM_NAME" envDefault:"Address Book"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses configuration from an explicit environment map instead of
// the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(options env.Options) (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.ParseWithOptions(cfg, options); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.AppBaseURL = strings.TrimRight(cfg.AppBaseURL, "/")

	return cfg, nil
}

func (c *Config) validate() error {
	if c.CacheOpTimeout <= 0 {
		return fmt.Errorf("config: CACHE_OP_TIMEOUT must be positive, got %s", c.CacheOpTimeout)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("config: CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("config: CACHE_CAPACITY must be positive, got %d", c.CacheCapacity)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
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

// UsesRedis reports whether a shared Redis cache is configured.
func (c *Config) UsesRedis() bool {
	return c.RedisURL != ""
}
