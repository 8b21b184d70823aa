package main

import (
	"os"

	"connectly/internal/app"
	"connectly/pkg/config"
	"connectly/pkg/logger"
)

// @title Connectly API
// @version 1.0
// @description Social posting backend with follower feeds, likes and comments.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config: %v", err)
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		log.Error("app: %v", err)
		os.Exit(1)
	}
}
