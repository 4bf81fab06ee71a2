package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/schooldesk/internal/flagx"
	"github.com/dmitrijs2005/schooldesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Fields left
// out of the file keep their current value.
type JsonConfig struct {
	HTTPAddr              *string         `json:"http_addr"`
	GRPCAddr              *string         `json:"grpc_addr"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	SeedAdmin             *SeedAdmin      `json:"seed_admin"`
	LogLevel              *string         `json:"log_level"`
}

type SeedAdmin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. If the file cannot be read or contains invalid JSON, the
// function panics.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.HTTPAddr, jc.HTTPAddr)
	setString(&cfg.GRPCAddr, jc.GRPCAddr)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.TokenValidityDuration != nil {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.SeedAdmin != nil {
		cfg.SeedAdminEmail = jc.SeedAdmin.Email
		cfg.SeedAdminPassword = jc.SeedAdmin.Password
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
