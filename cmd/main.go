package main

import (
	"os"

	"github.com/lshigami/Hireboard/internal/logger"
	"github.com/rs/zerolog/log"
)

// @title Hireboard Assessment API
// @version 1.0
// @description Test attempts, auto-grading and result analytics for the Hireboard recruiting platform.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
