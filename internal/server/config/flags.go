package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/schooldesk/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST bind address (e.g., ":8080")
//	-g string   identity provider gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN, empty for in-memory users
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-l string   log level
//
// Duration flags are accepted as integers in minutes and then converted
// to time.Duration values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to run the REST API")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "address and port to run the identity provider")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	tokenValidityDuration := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
