package config

import (
	"fmt"
	"time"
)

// Authentication modes understood by the session layer.
const (
	AuthModeJWT      = "jwt"
	AuthModeProvider = "provider"
)

// Config holds runtime settings for the SchoolDesk terminal client.
//
// Fields:
//   - APIBaseURL: prefix for every REST endpoint (e.g. "http://127.0.0.1:8080/api").
//   - AuthMode: "jwt" (backend-issued bearer tokens) or "provider" (external identity provider).
//   - ProviderAddr: host:port of the identity provider gRPC endpoint.
//   - StorePath: SQLite file that keeps the session across restarts.
//   - RequestTimeout: upper bound for a single HTTP call.
//   - LogLevel: slog level name.
type Config struct {
	APIBaseURL     string
	AuthMode       string
	ProviderAddr   string
	StorePath      string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.AuthMode = AuthModeJWT
	c.ProviderAddr = "127.0.0.1:50051"
	c.StorePath = "schooldesk.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeJWT, AuthModeProvider:
	default:
		return fmt.Errorf("unknown auth mode %q", c.AuthMode)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
