package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "SCHOOLDESK_"

// parseEnv loads dotenvFile (if it exists) into the process environment and
// then overlays Config with SCHOOLDESK_* variables. Variables already set in
// the environment win over the file. Malformed values panic, like the other
// sources.
func parseEnv(cfg *Config, dotenvFile string) {
	if dotenvFile != "" {
		if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	envString(&cfg.HTTPAddr, "HTTP_ADDR")
	envString(&cfg.GRPCAddr, "GRPC_ADDR")
	envString(&cfg.DatabaseDSN, "DATABASE_DSN")
	envString(&cfg.SecretKey, "SECRET_KEY")
	envString(&cfg.SeedAdminEmail, "SEED_ADMIN_EMAIL")
	envString(&cfg.SeedAdminPassword, "SEED_ADMIN_PASSWORD")
	envString(&cfg.LogLevel, "LOG_LEVEL")

	if v, ok := os.LookupEnv(envPrefix + "TOKEN_VALIDITY_DURATION"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.TokenValidityDuration = d
	}
}

func envString(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}
