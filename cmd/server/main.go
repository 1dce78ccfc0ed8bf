package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/factkeeper/internal/config"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/server"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
