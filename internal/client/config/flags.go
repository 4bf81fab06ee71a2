package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/schooldesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed here are parsed; everything else on the command line
// is left to other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-m", "-p", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "REST API base URL")
	fs.StringVar(&cfg.AuthMode, "m", cfg.AuthMode, "auth mode (jwt|provider)")
	fs.StringVar(&cfg.ProviderAddr, "p", cfg.ProviderAddr, "identity provider address")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "session store path")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
