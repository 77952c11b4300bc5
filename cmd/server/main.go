package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/secretsvault/internal/logging"
	"github.com/dmitrijs2005/secretsvault/internal/server"
	"github.com/dmitrijs2005/secretsvault/internal/server/config"
	"github.com/gin-gonic/gin"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	logger := logging.New(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
