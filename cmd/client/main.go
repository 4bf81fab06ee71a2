package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/schooldesk/internal/client/cli"
	"github.com/dmitrijs2005/schooldesk/internal/client/config"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	// stdout belongs to the REPL.
	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
