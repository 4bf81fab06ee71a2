// Package config handles configuration for the development backend,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the SchoolDesk backend.
//
// Fields:
//   - HTTPAddr: bind address for the REST API.
//   - GRPCAddr: bind address for the identity provider.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps users in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - SeedAdminEmail / SeedAdminPassword: admin account created at start when both are set.
//   - LogLevel: slog level name.
type Config struct {
	HTTPAddr              string
	GRPCAddr              string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	SeedAdminEmail        string
	SeedAdminPassword     string
	LogLevel              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 1 * time.Hour
	c.SeedAdminEmail = ""
	c.SeedAdminPassword = ""
	c.LogLevel = "info"
}

func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key is empty")
	}
	if c.TokenValidityDuration <= 0 {
		return errors.New("token validity must be positive")
	}
	if (c.SeedAdminEmail == "") != (c.SeedAdminPassword == "") {
		return errors.New("seed admin needs both email and password")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (.env included), an optional JSON file and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
